package validation

import (
	"github.com/examhub/examhub/internal/errors"
)

// Password pair checks run in the handler before the service is called.
// The messages are part of the API contract.

// ValidatePasswordForRegister checks that password and confirm_password match
func ValidatePasswordForRegister(password, confirmPassword string) error {
	if password != confirmPassword {
		return errors.NewValidationError("password field do not match confirm_password field")
	}
	return nil
}

// ValidatePasswordForReset checks that new_password and confirm_password match
func ValidatePasswordForReset(newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return errors.NewValidationError("new_password field do not match confirm_password field")
	}
	return nil
}

// ValidatePasswordForChange checks that new_password and confirm_new_password match
func ValidatePasswordForChange(newPassword, confirmNewPassword string) error {
	if newPassword != confirmNewPassword {
		return errors.NewValidationError("new_password field do not match confirm_new_password field")
	}
	return nil
}
