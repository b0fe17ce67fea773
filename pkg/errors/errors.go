package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrValidation           ErrorCode = "VALIDATION_ERROR"
	ErrConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrNotFound             ErrorCode = "NOT_FOUND"
	ErrConflict             ErrorCode = "CONFLICT"
	ErrStore                ErrorCode = "STORE_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Fields  []string  `json:"fields,omitempty"`
	Err     error     `json:"-"`
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

// AsAppError unwraps err to an *AppError if one is in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Error constructors

func Validation(message string, fields ...string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Fields:  fields,
	}
}

// ValidationFields builds the message from the offending field names so a
// client can both display it and mark the fields.
func ValidationFields(fields []string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

func ConfirmationRequired(action string) *AppError {
	return &AppError{
		Code:    ErrConfirmationRequired,
		Message: fmt.Sprintf("%s requires explicit confirmation", action),
	}
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}

func Store(err error) *AppError {
	return &AppError{
		Code:    ErrStore,
		Message: "storage operation failed",
		Err:     err,
	}
}
