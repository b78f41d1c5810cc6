package models

import "time"

// Favorite represents a recipe bookmarked by a user
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user" gorm:"index;uniqueIndex:idx_user_recipe_favorite;not null"`
	RecipeID  uint      `json:"recipe" gorm:"index;uniqueIndex:idx_user_recipe_favorite;not null"`
	CreatedAt time.Time `json:"created_at"`
}
