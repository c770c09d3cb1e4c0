package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidStateTransition indicates an attempted status change that is not
// permitted from the record's current status.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrConflict indicates that an operation is blocked by a durability rule,
// e.g. deleting a settled transaction or a category still in use.
var ErrConflict = errors.New("operation conflicts with existing state")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrServiceUnavailable indicates that an external dependency failed or timed
// out. The reporting gateway recovers from this via its local fallback.
var ErrServiceUnavailable = errors.New("external service unavailable")

// ErrRenderingFailed indicates that document rendering failed on both the
// remote and the local path.
var ErrRenderingFailed = errors.New("document rendering failed")

// AppError wraps an infrastructure failure with an internal code and message.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
