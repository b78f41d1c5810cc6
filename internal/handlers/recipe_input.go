package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/anonto42/recipe-hub/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

const (
	msgInvalidInteger = "A valid integer is required."
	msgNotNull        = "This field may not be null."
	msgNotString      = "Not a valid string."
	msgInvalidJSON    = "Value must be valid JSON."
)

// bindRecipeInput reads a recipe payload from JSON or from a multipart/urlencoded form.
// Type errors are returned as FieldErrors alongside whatever parsed cleanly.
func bindRecipeInput(c echo.Context) (*models.RecipeInput, validators.FieldErrors, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) || strings.HasPrefix(ctype, echo.MIMEApplicationForm) {
		return bindRecipeForm(c)
	}
	return bindRecipeJSON(c)
}

func bindRecipeJSON(c echo.Context) (*models.RecipeInput, validators.FieldErrors, error) {
	in := &models.RecipeInput{}
	errs := validators.FieldErrors{}

	var body map[string]json.RawMessage
	if c.Request().ContentLength != 0 {
		// a chunked request may carry no body at all
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
	}

	for field, dst := range map[string]**string{
		"title":        &in.Title,
		"description":  &in.Description,
		"instructions": &in.Instructions,
		"category":     &in.Category,
	} {
		raw, ok := body[field]
		if !ok {
			continue
		}
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs.Add(field, msgNotString)
			continue
		}
		if s == nil {
			empty := ""
			s = &empty
		}
		*dst = s
	}

	if raw, ok := body["ingredients"]; ok {
		in.Ingredients = raw
	}

	for field, dst := range map[string]**int{
		"preparation_time": &in.PreparationTime,
		"cooking_time":     &in.CookingTime,
		"servings":         &in.Servings,
	} {
		raw, ok := body[field]
		if !ok {
			continue
		}
		if field == "cooking_time" {
			in.CookingTimeSet = true
		}
		if string(raw) == "null" {
			if field != "cooking_time" {
				errs.Add(field, msgNotNull)
			}
			continue
		}
		n, err := jsonInt(raw)
		if err != nil {
			errs.Add(field, msgInvalidInteger)
			continue
		}
		*dst = &n
	}

	return in, errs, nil
}

func bindRecipeForm(c echo.Context) (*models.RecipeInput, validators.FieldErrors, error) {
	in := &models.RecipeInput{}
	errs := validators.FieldErrors{}

	form, err := c.FormParams()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	for field, dst := range map[string]**string{
		"title":        &in.Title,
		"description":  &in.Description,
		"instructions": &in.Instructions,
		"category":     &in.Category,
	} {
		if _, ok := form[field]; ok {
			v := form.Get(field)
			*dst = &v
		}
	}

	if _, ok := form["ingredients"]; ok {
		raw := strings.TrimSpace(form.Get("ingredients"))
		switch {
		case raw == "":
			in.Ingredients = json.RawMessage(`""`)
		case json.Valid([]byte(raw)):
			in.Ingredients = json.RawMessage(raw)
		default:
			errs.Add("ingredients", msgInvalidJSON)
		}
	}

	for field, dst := range map[string]**int{
		"preparation_time": &in.PreparationTime,
		"cooking_time":     &in.CookingTime,
		"servings":         &in.Servings,
	} {
		if _, ok := form[field]; !ok {
			continue
		}
		if field == "cooking_time" {
			in.CookingTimeSet = true
		}
		v := strings.TrimSpace(form.Get(field))
		if v == "" && field == "cooking_time" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add(field, msgInvalidInteger)
			continue
		}
		*dst = &n
	}

	picture, err := optionalFile(c, "picture")
	if err != nil {
		return nil, nil, err
	}
	in.Picture = picture

	return in, errs, nil
}

// jsonInt accepts a JSON integer or a string holding one
func jsonInt(raw json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		i, err := strconv.Atoi(n.String())
		return i, err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}
