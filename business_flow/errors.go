// Package businessflow contains the core business logic and use cases for the suggestion workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Suggestion-related errors
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrInvalidStatus      = errors.New("invalid status")

	// Configuration errors
	ErrHasherNotConfigured = errors.New("identity hasher is not configured")

	// Filter errors
	ErrInvalidPage = errors.New("page must be at least 1")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsSuggestionNotFound(err error) bool {
	return errors.Is(err, ErrSuggestionNotFound)
}

func IsInvalidStatus(err error) bool {
	return errors.Is(err, ErrInvalidStatus)
}

func IsHasherNotConfigured(err error) bool {
	return errors.Is(err, ErrHasherNotConfigured)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}
