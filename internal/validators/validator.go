package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidImage = "Only PNG, JPG and JPEG images are allowed."
)

var allowedImageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// FieldErrors maps a field name to its error messages
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], " "))
	}
	return strings.Join(parts, "; ")
}

// MarshalJSON keeps the field map intact when FieldErrors is carried by an echo.HTTPError
func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string(fe))
}

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Merge appends every message of other into fe
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		fe[field] = append(fe[field], msgs...)
	}
}

// MergeAbsent copies the fields of other that fe has no messages for
func (fe FieldErrors) MergeAbsent(other FieldErrors) {
	for field, msgs := range other {
		if _, ok := fe[field]; !ok {
			fe[field] = msgs
		}
	}
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("recipe_category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("image_ext", func(fl validator.FieldLevel) bool {
		return allowedImageExts[strings.ToLower(filepath.Ext(fl.Field().String()))]
	})
	return &CustomValidator{validator: v}
}

// Validate runs struct tags on i and returns FieldErrors on failure
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe.Tag(), fe.Param(), fe.Kind(), fe.Value()))
	}
	return out
}

// Var checks a single value against tag and returns the message list, empty when valid
func (cv *CustomValidator) Var(value interface{}, tag string) []string {
	err := cv.validator.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe.Tag(), fe.Param(), fe.Kind(), fe.Value()))
	}
	return msgs
}

func message(tag, param string, kind reflect.Kind, value interface{}) string {
	switch tag {
	case "required":
		return MsgRequired
	case "email":
		return "Enter a valid email address."
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)
	case "recipe_category":
		return fmt.Sprintf("%q is not a valid choice.", value)
	case "image_ext":
		return MsgInvalidImage
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", tag)
	}
}
