package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewNotFound reports that the entity acted on does not exist.
func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

// NewInvalidCredentials is returned for both an unknown email and a wrong
// password; callers must not be able to tell the two apart.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, nil)
}

// NewDuplicateEmail reports a uniqueness violation on user creation.
func NewDuplicateEmail(email string) error {
	return NewDomainError("DUPLICATE_EMAIL", "email already registered", http.StatusConflict,
		map[string]any{"email": email})
}

// NewUserNotFound reports that a referenced user id does not exist. Distinct
// from NOT_FOUND because it names a cross-entity reference, not the entity
// being acted on.
func NewUserNotFound(userID int64) error {
	return NewDomainError("USER_NOT_FOUND", "referenced user not found", http.StatusNotFound,
		map[string]any{"user_id": userID})
}

// NewProfileAlreadyExists reports a violation of the one-profile-per-user rule.
func NewProfileAlreadyExists(userID int64) error {
	return NewDomainError("PROFILE_ALREADY_EXISTS", "user already has a staff profile", http.StatusConflict,
		map[string]any{"user_id": userID})
}

// NewLastAdminProtected reports that deletion would remove the sole admin.
func NewLastAdminProtected() error {
	return NewDomainError("LAST_ADMIN_PROTECTED", "cannot delete the last admin user", http.StatusConflict, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}

// CodeOf extracts the DomainError code, or empty string for non-domain errors.
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
