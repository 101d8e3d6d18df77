package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMessage returns a human readable message for a validation tag
func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s does not meet the minimum length or value", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length or value", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", field)
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date/time", field)
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

// BindingErrorMessage converts a gin binding error into field-level messages.
// Non-validator errors (malformed JSON, wrong types) get a generic message.
func BindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			messages = append(messages, DefaultMessage(fieldErr.Field(), fieldErr.Tag()))
		}
		return strings.Join(messages, ", ")
	}
	return "invalid request payload"
}
