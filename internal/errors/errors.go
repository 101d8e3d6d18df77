package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Domain error codes
const (
	CodeValidation         = "VALIDATION"
	CodeDuplicate          = "DUPLICATE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotActivated       = "NOT_ACTIVATED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbiddenAttempt   = "FORBIDDEN_ATTEMPT"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidOldPassword = "INVALID_OLD_PASSWORD"
	CodeUploadFailed       = "UPLOAD_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Predefined domain errors. Messages are part of the public API contract and
// are matched verbatim by clients.
var (
	// Registration conflicts. The store's unique indexes on email and phone are
	// the authoritative backstop; these carry the user-facing messages.
	ErrEmailExistsUnverified = NewDomainError(CodeDuplicate, "User already exists, Please kindly verify your account")
	ErrEmailExists           = NewDomainError(CodeDuplicate, "User already exists")
	ErrPhoneExists           = NewDomainError(CodeDuplicate, "User with this phone number already exists")

	// Authentication. Unknown email and wrong password share one message so
	// responses cannot be used for account enumeration.
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Invalid Credentials")
	ErrNotActivated       = NewDomainError(CodeNotActivated, "Please kindly verify your account to login")
	ErrUnauthorized       = NewDomainError(CodeUnauthorized, "Unauthorized access")

	// Secret-code lookups (activation, reset) fail with one deliberately vague
	// message regardless of which condition failed.
	ErrForbiddenAttempt = NewDomainError(CodeForbiddenAttempt, "Forbidden Attempt")

	ErrNotFound           = NewDomainError(CodeNotFound, "Not Found")
	ErrInvalidOldPassword = NewDomainError(CodeInvalidOldPassword, "Invalid Old Password")
	ErrUploadFailed       = NewDomainError(CodeUploadFailed, "Upload failed")
	ErrInternal           = NewDomainError(CodeInternal, "Internal Server Error")
)

// NewValidationError creates a 400 validation error with a field-level message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request. Duplicates are reported as 400, not 409, to keep the
	// upstream API contract.
	case CodeValidation, CodeDuplicate:
		return http.StatusBadRequest

	// 401 Unauthorized
	case CodeInvalidCredentials, CodeNotActivated, CodeUnauthorized:
		return http.StatusUnauthorized

	// 403 Forbidden
	case CodeForbiddenAttempt:
		return http.StatusForbidden

	// 404 Not Found
	case CodeNotFound:
		return http.StatusNotFound

	// 422 Unprocessable Entity
	case CodeInvalidOldPassword, CodeUploadFailed:
		return http.StatusUnprocessableEntity

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
