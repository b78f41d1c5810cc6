package validators

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func validRecipe() *models.RecipeInput {
	return &models.RecipeInput{
		Title:           strPtr("Pie"),
		Ingredients:     json.RawMessage(`["apples"]`),
		Instructions:    strPtr("Bake."),
		Category:        strPtr("dessert"),
		PreparationTime: intPtr(10),
		Servings:        intPtr(2),
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.RegisterRequest{Username: "alice", Email: "bad"})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"Enter a valid email address."}, fe["email"])
	assert.Equal(t, []string{MsgRequired}, fe["password"])
	assert.Equal(t, []string{MsgRequired}, fe["password2"])
	assert.NotContains(t, fe, "username")

	assert.NoError(t, v.Validate(&models.ReviewRequest{}))
	err = v.Validate(&models.ReviewRequest{Rating: intPtr(0)})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 1."}, fe["rating"])
}

func TestValidateRecipe(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.ValidateRecipe(validRecipe(), false).Empty())

	tests := []struct {
		name  string
		edit  func(*models.RecipeInput)
		field string
		want  string
	}{
		{"negative preparation", func(in *models.RecipeInput) { in.PreparationTime = intPtr(-1) }, "preparation_time", "Time field can only be positive"},
		{"no servings", func(in *models.RecipeInput) { in.Servings = intPtr(0) }, "servings", "Servings can only be one or more"},
		{"null ingredients", func(in *models.RecipeInput) { in.Ingredients = json.RawMessage(`null`) }, "ingredients", "Ingredients must be provided"},
		{"empty object", func(in *models.RecipeInput) { in.Ingredients = json.RawMessage(`{}`) }, "ingredients", "Ingredients must be provided"},
		{"blank string", func(in *models.RecipeInput) { in.Ingredients = json.RawMessage(`"  "`) }, "ingredients", "Ingredients must be provided"},
		{"empty title", func(in *models.RecipeInput) { in.Title = strPtr("") }, "title", "Title cannot be empty"},
		{"empty category", func(in *models.RecipeInput) { in.Category = strPtr("") }, "category", "Category must be chosen"},
		{"unknown category", func(in *models.RecipeInput) { in.Category = strPtr("brunch") }, "category", `"brunch" is not a valid choice.`},
		{"missing instructions", func(in *models.RecipeInput) { in.Instructions = nil }, "instructions", MsgRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRecipe()
			tt.edit(in)
			errs := v.ValidateRecipe(in, false)
			assert.Equal(t, []string{tt.want}, errs[tt.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateRecipePartial(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.ValidateRecipe(&models.RecipeInput{}, true).Empty())
	assert.Len(t, v.ValidateRecipe(&models.RecipeInput{}, false), 6)

	errs := v.ValidateRecipe(&models.RecipeInput{Servings: intPtr(0)}, true)
	assert.Equal(t, FieldErrors{"servings": {"Servings can only be one or more"}}, errs)
}

func TestValidateImage(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateImage(&multipart.FileHeader{Filename: "a.PNG", Size: 10}))
	assert.Empty(t, v.ValidateImage(&multipart.FileHeader{Filename: "a.jpeg", Size: MaxImageSize}))
	assert.Equal(t, []string{MsgInvalidImage}, v.ValidateImage(&multipart.FileHeader{Filename: "a.gif", Size: 10}))
	assert.Equal(t,
		[]string{"The picture file size must be under 5MB.", MsgInvalidImage},
		v.ValidateImage(&multipart.FileHeader{Filename: "a.bmp", Size: MaxImageSize + 1}),
	)
}

func TestFieldErrorsMerge(t *testing.T) {
	fe := FieldErrors{"servings": {"A valid integer is required."}}
	fe.MergeAbsent(FieldErrors{"servings": {MsgRequired}, "title": {MsgRequired}})
	assert.Equal(t, FieldErrors{
		"servings": {"A valid integer is required."},
		"title":    {MsgRequired},
	}, fe)

	fe.Merge(FieldErrors{"title": {"Title cannot be empty"}})
	assert.Equal(t, []string{MsgRequired, "Title cannot be empty"}, fe["title"])
	assert.Equal(t, "servings: A valid integer is required.; title: This field is required. Title cannot be empty", fe.Error())
}

func TestFieldErrorsSurviveHTTPError(t *testing.T) {
	fe := FieldErrors{"password": {"Passwords must match"}}

	raw, err := json.Marshal(fe)
	require.NoError(t, err)
	assert.JSONEq(t, `{"password":["Passwords must match"]}`, string(raw))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/register/", nil), rec)
	e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, fe), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"password":["Passwords must match"]}`, rec.Body.String())
}
