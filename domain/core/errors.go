package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// Lifecycle errors
	ErrNoActiveSession  = errors.New("no active session")
	ErrEmptyInput       = errors.New("input is empty")
	ErrChatInFlight     = errors.New("chat turn already in flight")
	ErrCouncilInFlight  = errors.New("council run already in flight")
	ErrSessionCompleted = errors.New("session already completed")

	// Settings errors
	ErrTooManyPrinciples = errors.New("focus principles exceed the cap of 3")
	ErrUnknownPrinciple  = errors.New("principle not in catalog")

	// Judgment service errors
	ErrServiceUnreachable = errors.New("judgment service unreachable")
	ErrSynthesisFailed    = errors.New("synthesis produced the fallback bundle")
)

// NewNotFoundError builds a not-found error with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// IsNotFoundError reports whether err wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
