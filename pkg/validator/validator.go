package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// slugPattern is the only shape a slug may take, everywhere one is written.
// The categories table carries the same check as a storage-level backstop.
var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IsSlug reports whether s is a well-formed slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// RegisterSlugValidation wires the "slugpattern" binding tag into gin's
// validator engine. Must run before any handler binds a slug-carrying body.
func RegisterSlugValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	return v.RegisterValidation("slugpattern", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "slugpattern":
		return fmt.Sprintf("%s may only contain latin letters, digits, hyphen and underscore", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Slug":        "slug",
		"Name":        "name",
		"Description": "description",
		"CreatedDate": "createdDate",
		"Active":      "active",
		"Search":      "search",
		"Sort":        "sort",
		"Page":        "page",
		"PageSize":    "pageSize",
		"Field":       "field",
		"Value":       "value",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
