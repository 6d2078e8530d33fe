package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to clients.
const (
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeInvalidOrExpired  = "INVALID_OR_EXPIRED"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeSlugConflict      = "SLUG_CONFLICT"
	CodeNotFound          = "NOT_FOUND"
	CodePersistenceFailed = "PERSISTENCE_FAILED"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Issues     any
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
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest)
}

func NewMissingCredential(message string) error {
	return NewDomainError(CodeMissingCredential, message, http.StatusUnauthorized)
}

func NewInvalidOrExpired(err error) error {
	return &DomainError{
		Code:       CodeInvalidOrExpired,
		Message:    "invalid or expired token",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// NewValidationError carries the per-field issues in the response body.
func NewValidationError(message string, issues any) error {
	return &DomainError{
		Code:       CodeValidationFailed,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Issues:     issues,
	}
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewSlugConflict(slug string) error {
	return NewDomainError(CodeSlugConflict, fmt.Sprintf("a post with slug %q already exists", slug), http.StatusConflict)
}

// NewPersistenceFailed hides the store error from clients but keeps it for logging.
func NewPersistenceFailed(err error) error {
	return &DomainError{
		Code:       CodePersistenceFailed,
		Message:    "unable to complete the request",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
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
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
