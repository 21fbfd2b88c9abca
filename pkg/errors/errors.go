package errors

import (
	"errors"
	"fmt"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidOTP         = "INVALID_OTP"
)

var (
	ErrInvalidCredentials      = NewAppError(CodeInvalidCredentials, "invalid mobile number or password", nil)
	ErrInvalidToken            = NewAppError(CodeUnauthorized, "invalid or expired token", nil)
	ErrTokenExpired            = NewAppError(CodeUnauthorized, "token has expired", nil)
	ErrSessionRevoked          = NewAppError(CodeUnauthorized, "session is no longer active, please log in again", nil)
	ErrUnauthorized            = NewAppError(CodeUnauthorized, "unauthorized access", nil)
	ErrInsufficientPermissions = NewAppError(CodeForbidden, "insufficient permissions", nil)
	ErrNotOwner                = NewAppError(CodeForbidden, "you do not own this resource", nil)
	ErrInvalidOTP              = NewAppError(CodeInvalidOTP, "invalid verification code", nil)
)

type AppError struct {
	Code    string
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

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a VALIDATION_ERROR carrying a caller-facing message.
func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

// CodeOf returns the AppError code found in err's chain, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
