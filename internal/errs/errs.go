package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for business logic
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrProviderFailure    = errors.New("identity provider request failed")
)

// DomainError is a business-rule failure detected after input validation
// passed. It carries the HTTP status the handler should respond with.
type DomainError struct {
	Message string
	Status  int
}

func NewDomainError(message string, status int) *DomainError {
	return &DomainError{Message: message, Status: status}
}

func (e *DomainError) Error() string {
	return e.Message
}

// ValidationError holds field-scoped validation messages. Translated to a
// 400 response with the field map as the envelope message.
type ValidationError struct {
	Fields map[string][]string
}

// FieldError builds a ValidationError for a single field.
func FieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func (e *ValidationError) Error() string {
	for field, messages := range e.Fields {
		if len(messages) > 0 {
			return fmt.Sprintf("%s: %s", field, messages[0])
		}
	}
	return "validation failed"
}
