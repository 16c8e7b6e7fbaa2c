package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing key in Redis.
	RedisNotFoundMessage = "not found"
	// UpstreamErrorMessage describes failures talking to the marketplace API.
	UpstreamErrorMessage = "marketplace API request failed"
	// UnauthorizedMessage describes missing or insufficient credentials.
	UnauthorizedMessage = "not authorized"
)

// AppError wraps an underlying error with an HTTP status and safe message.
// Message is what a view may show inside an error banner; the wrapped error
// stays in the logs.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Validation builds an AppError for rejected form input. There is no
// underlying cause; the message is the whole story.
func Validation(message string) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Message: message,
	}
}

// StatusOf extracts the HTTP status carried by err, falling back to 500 for
// errors that never went through this package.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the user-safe message carried by err. Errors from
// outside this package collapse to the generic system message so internal
// detail never reaches a banner.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return SystemErrorMessage
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
