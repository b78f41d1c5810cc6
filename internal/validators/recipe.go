package validators

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/anonto42/recipe-hub/backend/internal/models"
)

const MaxImageSize = 5 * 1024 * 1024

// ValidateImage checks size and extension of an uploaded picture
func (cv *CustomValidator) ValidateImage(fh *multipart.FileHeader) []string {
	var msgs []string
	if fh.Size > MaxImageSize {
		msgs = append(msgs, "The picture file size must be under 5MB.")
	}
	return append(msgs, cv.Var(fh.Filename, "image_ext")...)
}

// ValidateRecipe checks a recipe payload. With partial set, only supplied fields are checked.
func (cv *CustomValidator) ValidateRecipe(in *models.RecipeInput, partial bool) FieldErrors {
	errs := FieldErrors{}
	required := func(field string, supplied bool) bool {
		if !supplied && !partial {
			errs.Add(field, MsgRequired)
		}
		return supplied
	}

	if required("title", in.Title != nil) {
		if strings.TrimSpace(*in.Title) == "" {
			errs.Add("title", "Title cannot be empty")
		} else if msgs := cv.Var(*in.Title, "max=50"); msgs != nil {
			errs["title"] = append(errs["title"], msgs...)
		}
	}

	if in.Description != nil {
		if msgs := cv.Var(*in.Description, "max=500"); msgs != nil {
			errs["description"] = append(errs["description"], msgs...)
		}
	}

	if required("ingredients", in.Ingredients != nil) && emptyJSON(in.Ingredients) {
		errs.Add("ingredients", "Ingredients must be provided")
	}

	if required("instructions", in.Instructions != nil) && strings.TrimSpace(*in.Instructions) == "" {
		errs.Add("instructions", "Instructions must be provided")
	}

	if required("category", in.Category != nil) {
		if *in.Category == "" {
			errs.Add("category", "Category must be chosen")
		} else if msgs := cv.Var(*in.Category, "recipe_category"); msgs != nil {
			errs["category"] = append(errs["category"], msgs...)
		}
	}

	if required("preparation_time", in.PreparationTime != nil) && *in.PreparationTime < 0 {
		errs.Add("preparation_time", "Time field can only be positive")
	}

	if in.CookingTime != nil && *in.CookingTime < 0 {
		errs.Add("cooking_time", "Time field can only be positive")
	}

	if required("servings", in.Servings != nil) && *in.Servings < 1 {
		errs.Add("servings", "Servings can only be one or more")
	}

	if in.Picture != nil {
		if msgs := cv.ValidateImage(in.Picture); len(msgs) > 0 {
			errs["picture"] = append(errs["picture"], msgs...)
		}
	}

	return errs
}

// emptyJSON reports whether raw is null, an empty string, an empty array or an empty object
func emptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	}
	return false
}
