package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateReference  = errors.New("confirmation reference already issued")
	ErrInvalidTransition   = errors.New("invalid payment status transition")
	ErrRegistrationFailed  = errors.New("registration failed, please try again")
	ErrPaymentVerification = errors.New("payment could not be verified")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// ValidationError carries one message per rejected form field.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError for the given field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match validation failures with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
