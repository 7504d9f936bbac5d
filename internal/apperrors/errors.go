package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrIncompleteParams indicates that a closing report was requested without the
// required closing identifier or opening date/time. This is a distinct "cannot
// run" state, never silently defaulted to an empty result.
var ErrIncompleteParams = errors.New("incomplete closing parameters")

// ErrClosingClosed indicates an attempt to append records to a closing session
// that has already been closed. Closed sessions are immutable.
var ErrClosingClosed = errors.New("closing session already closed")

// AppError carries an HTTP-like status code alongside a message and the
// wrapped cause, so repositories can signal how a failure should surface.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match AppErrors against the package sentinels by code.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == 404
	case ErrDuplicate:
		return e.Code == 409
	case ErrValidation:
		return e.Code == 400
	}
	return false
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError representing a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError representing a uniqueness conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError representing invalid input.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
