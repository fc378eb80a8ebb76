package errors

import (
	"errors"
	"fmt"
)

var (
	// Tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token expired")

	// Authorization
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTooManyAttempts    = fmt.Errorf("too many login attempts, try again later")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("access denied")

	// Context
	ErrSessionNotFound = fmt.Errorf("session not found in request context")

	// Common
	ErrNotFound          = fmt.Errorf("record not found")
	ErrBadRequest        = fmt.Errorf("bad request")
	ErrConflict          = fmt.Errorf("conflict")
	ErrUnsupportedFormat = fmt.Errorf("unsupported export format")
)

// HttpError carries an HTTP status and a user-facing message; Err is logged, never returned.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// InvalidInputError is a validation failure whose message is safe to show to the user.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation detected before or during a write.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewConflictError(field, format string, args ...interface{}) error {
	return &ConflictError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedFormatError is returned for an export format outside xlsx/pdf/csv.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q (expected xlsx, pdf or csv)", e.Format)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

func IsValidation(err error) bool {
	var inv *InvalidInputError
	return errors.As(err, &inv)
}
