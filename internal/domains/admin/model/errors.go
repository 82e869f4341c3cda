package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeNotConfigured  = "ADMIN_NOT_CONFIGURED"
	ErrCodeInvalidPath    = "INVALID_ADMIN_PATH"
	ErrCodeInvalidCreds   = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeSessionExpired = "SESSION_EXPIRED"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// Errors
var (
	ErrMissingCredentials = errors.New("username, password and adminPath are required")
	ErrNotConfigured      = errors.New("admin not configured")
	ErrInvalidAdminPath   = errors.New("invalid admin path")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrValidation         = errors.New("validation failed")
)

// AdminError custom error type
type AdminError struct {
	Code    string
	Message string
	Err     error
}

func (e *AdminError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AdminError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewMissingCredentialsError() *AdminError {
	return &AdminError{Code: ErrCodeInvalidRequest, Message: ErrMissingCredentials.Error(), Err: ErrMissingCredentials}
}

func NewNotConfiguredError() *AdminError {
	return &AdminError{Code: ErrCodeNotConfigured, Message: ErrNotConfigured.Error(), Err: ErrNotConfigured}
}

func NewInvalidAdminPathError() *AdminError {
	return &AdminError{Code: ErrCodeInvalidPath, Message: ErrInvalidAdminPath.Error(), Err: ErrInvalidAdminPath}
}

func NewInvalidCredentialsError() *AdminError {
	return &AdminError{Code: ErrCodeInvalidCreds, Message: ErrInvalidCredentials.Error(), Err: ErrInvalidCredentials}
}

func NewUnauthorizedError(reason string) *AdminError {
	return &AdminError{Code: ErrCodeUnauthorized, Message: reason, Err: ErrUnauthorized}
}

func NewSessionExpiredError() *AdminError {
	return &AdminError{Code: ErrCodeSessionExpired, Message: ErrSessionExpired.Error(), Err: ErrSessionExpired}
}

func NewValidationError(err error) *AdminError {
	return &AdminError{Code: ErrCodeValidation, Message: err.Error(), Err: fmt.Errorf("%w: %w", ErrValidation, err)}
}
