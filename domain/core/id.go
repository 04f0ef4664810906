package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// UUID v7 keeps IDs sortable by creation time; fall back to v4 if the
	// clock source is unavailable.
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID     ID
	MessageID     ID
	PrincipleName string
)

// String conversions for domain IDs
func (id SessionID) String() string    { return ID(id).String() }
func (id MessageID) String() string    { return ID(id).String() }
func (p PrincipleName) String() string { return string(p) }

// NewSessionID allocates a fresh session identifier
func NewSessionID() SessionID { return SessionID(NewID()) }

// NewMessageID allocates a fresh message identifier
func NewMessageID() MessageID { return MessageID(NewID()) }

// ParseSessionID parses a string into SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}
