package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrUnauthenticated        = errors.New("authentication token required")
	ErrForbidden              = errors.New("access denied")
	ErrNotFound               = errors.New("not found")
	ErrConstraintViolation    = errors.New("constraint violation")
	ErrInvalidCurrentPassword = errors.New("invalid current password")
)

// ValidationError reports the first field that failed input validation.
// Message is safe to show to the client as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFound(what string, id uint) error {
	return fmt.Errorf("%s with ID %d: %w", what, id, ErrNotFound)
}
