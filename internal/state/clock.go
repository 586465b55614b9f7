package state

import (
	"fmt"

	"github.com/google/uuid"
)

var sessionID = uuid.NewString()

// SessionID identifies this run of the application in logs.
func SessionID() string { return sessionID }

// NewStrokeID returns a unique stroke identifier.
func NewStrokeID() string {
	return uuid.NewString()
}

// Label is a short human-readable tag for a stroke.
func Label(s *Stroke) string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return fmt.Sprintf("stroke-%s", s.ID[:8])
}
