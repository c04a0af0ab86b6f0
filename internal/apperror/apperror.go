// Package apperror defines the application's error taxonomy.
//
// Every failure a handler can report belongs to one of a handful of sentinel
// errors. Lower layers wrap the sentinel inside an *AppError (or with fmt.Errorf
// and %w); the HTTP layer only ever asks errors.Is(err, apperror.ErrXxx).
// Anything that matches no sentinel is an internal error.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports a missing or invalid field.
// HTTP handlers map this to 422 Unprocessable Entity.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// BadRequest reports a request that is malformed as a whole (unparsable body,
// missing quiz category descriptor). HTTP handlers map this to 400.
func BadRequest(message string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Unauthorized returns an AppError indicating a missing or invalid bearer token.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
