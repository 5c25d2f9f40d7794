package service

import (
	"errors"
	"strings"
)

// Domain errors surfaced to the HTTP layer, which maps them onto status
// codes. Unknown user and wrong password collapse into the same sentinel
// so responses cannot be used for username enumeration.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthorized      = errors.New("not authorized")
)

// ValidationError carries the human-readable messages for a 422 response.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
