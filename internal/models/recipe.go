package models

import (
	"encoding/json"
	"mime/multipart"
	"time"

	"gorm.io/datatypes"
)

// RecipeCategories lists every accepted recipe category
var RecipeCategories = []string{
	"appetizer",
	"main_course",
	"dessert",
	"salad",
	"soup",
	"side_dish",
	"beverage",
	"snack",
	"breakfast",
	"bread",
	"pasta",
	"seafood",
	"grill",
	"vegetarian",
	"vegan",
}

func IsValidCategory(category string) bool {
	for _, c := range RecipeCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Recipe struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	CreatorID       uint           `json:"creator" gorm:"index;not null"`
	Title           string         `json:"title" gorm:"size:50;not null"`
	Picture         *string        `json:"picture"`
	Description     string         `json:"description" gorm:"size:500"`
	Ingredients     datatypes.JSON `json:"ingredients" gorm:"not null"`
	Instructions    string         `json:"instructions" gorm:"type:text;not null"`
	Category        string         `json:"category" gorm:"size:20;index;not null"`
	PreparationTime int            `json:"preparation_time"`
	CookingTime     *int           `json:"cooking_time"`
	Servings        int            `json:"servings"`
	CreatedAt       time.Time      `json:"created_date" gorm:"index"`
	UpdatedAt       time.Time      `json:"updated_date" gorm:"index"`
}

// RecipeInput carries the fields supplied by a create or update request.
// A nil field was not supplied.
type RecipeInput struct {
	Title           *string
	Description     *string
	Ingredients     json.RawMessage
	Instructions    *string
	Category        *string
	PreparationTime *int
	CookingTime     *int
	CookingTimeSet  bool // true when cooking_time was supplied, even as null
	Servings        *int
	Picture         *multipart.FileHeader
}

// ApplyTo copies the supplied fields onto r. Picture is handled by the caller.
func (in *RecipeInput) ApplyTo(r *Recipe) {
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Ingredients != nil {
		r.Ingredients = datatypes.JSON(in.Ingredients)
	}
	if in.Instructions != nil {
		r.Instructions = *in.Instructions
	}
	if in.Category != nil {
		r.Category = *in.Category
	}
	if in.PreparationTime != nil {
		r.PreparationTime = *in.PreparationTime
	}
	if in.CookingTimeSet {
		r.CookingTime = in.CookingTime
	}
	if in.Servings != nil {
		r.Servings = *in.Servings
	}
}

type RecipeCreatedResponse struct {
	Message string  `json:"message"`
	Data    *Recipe `json:"data"`
}
