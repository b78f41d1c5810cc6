package models

import "time"

// Review is a rating and/or short text left by a user on a recipe.
// A user reviews a given recipe at most once.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user" gorm:"not null;uniqueIndex:idx_review_user_recipe"`
	RecipeID  uint      `json:"recipe" gorm:"not null;index;uniqueIndex:idx_review_user_recipe"`
	Review    *string   `json:"review" gorm:"size:100"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_date"`
}

// ReviewRequest defines the request body for creating or updating a review
type ReviewRequest struct {
	Recipe *uint   `json:"recipe"`
	Review *string `json:"review" validate:"omitnil,max=100"`
	Rating *int    `json:"rating" validate:"omitnil,min=1,max=5"`
}
