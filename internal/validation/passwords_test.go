package validation

import (
	"testing"

	apperrors "github.com/examhub/examhub/internal/errors"
)

func TestValidatePasswordForRegister(t *testing.T) {
	if err := ValidatePasswordForRegister("secret123", "secret123"); err != nil {
		t.Errorf("Expected matching passwords to pass, got %v", err)
	}

	err := ValidatePasswordForRegister("secret123", "different")
	if err == nil {
		t.Fatal("Expected mismatch error, got nil")
	}

	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil {
		t.Fatalf("Expected domain error, got %T", err)
	}
	if domainErr.Code != apperrors.CodeValidation {
		t.Errorf("Expected code %s, got %s", apperrors.CodeValidation, domainErr.Code)
	}
	if domainErr.Message != "password field do not match confirm_password field" {
		t.Errorf("Unexpected message: %s", domainErr.Message)
	}
}

func TestValidatePasswordForReset(t *testing.T) {
	if err := ValidatePasswordForReset("secret123", "secret123"); err != nil {
		t.Errorf("Expected matching passwords to pass, got %v", err)
	}

	err := ValidatePasswordForReset("secret123", "different")
	if err == nil {
		t.Fatal("Expected mismatch error, got nil")
	}
	if apperrors.GetErrorMessage(err) != "new_password field do not match confirm_password field" {
		t.Errorf("Unexpected message: %s", apperrors.GetErrorMessage(err))
	}
}

func TestValidatePasswordForChange(t *testing.T) {
	if err := ValidatePasswordForChange("secret123", "secret123"); err != nil {
		t.Errorf("Expected matching passwords to pass, got %v", err)
	}

	err := ValidatePasswordForChange("secret123", "different")
	if err == nil {
		t.Fatal("Expected mismatch error, got nil")
	}
	if apperrors.GetErrorMessage(err) != "new_password field do not match confirm_new_password field" {
		t.Errorf("Unexpected message: %s", apperrors.GetErrorMessage(err))
	}
	if apperrors.ToHTTPStatus(err) != 400 {
		t.Errorf("Expected HTTP 400, got %d", apperrors.ToHTTPStatus(err))
	}
}
