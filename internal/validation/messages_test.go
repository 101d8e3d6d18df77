package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type loginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=7"`
}

func TestBindingErrorMessage(t *testing.T) {
	v := validator.New()

	err := v.Struct(loginPayload{Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	msg := BindingErrorMessage(err)
	if !strings.Contains(msg, "email must be a valid email address") {
		t.Errorf("Expected email message, got %q", msg)
	}
	if !strings.Contains(msg, "password does not meet the minimum length or value") {
		t.Errorf("Expected password message, got %q", msg)
	}
}

func TestBindingErrorMessage_NonValidatorError(t *testing.T) {
	msg := BindingErrorMessage(errors.New("unexpected EOF"))
	if msg != "invalid request payload" {
		t.Errorf("Expected fallback message, got %q", msg)
	}
}
