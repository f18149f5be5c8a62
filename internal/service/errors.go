package service

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameTaken   = errors.New("username exists")
	ErrAccountNotFound = errors.New("user not found")
	ErrMealNotFound    = errors.New("meal not found")
	ErrUnauthenticated = errors.New("unauthorized")
)

// Validation failure reasons.
const (
	ReasonRequired    = "is required"
	ReasonTooLong     = "is too long"
	ReasonInvalidUUID = "must be a valid uuid"
	ReasonNoFields    = "at least one field is required"
)

// ValidationError reports a malformed request field. Field is empty when the
// failure concerns the payload as a whole.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
