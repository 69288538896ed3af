package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
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
	SessionID ID
	SubjectID ID
)

// NewSessionID creates a fresh, time-ordered identifier for an audit session
func NewSessionID() SessionID { return SessionID(NewID()) }

// String conversions for domain IDs
func (id SessionID) String() string { return ID(id).String() }
func (id SubjectID) String() string { return ID(id).String() }

// IsEmpty checks if the subject ID is empty
func (id SubjectID) IsEmpty() bool { return ID(id).IsEmpty() }
