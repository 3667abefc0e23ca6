package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrChatUnavailable    = errors.New("chat service unavailable")
)

// IntegrityError reports a destination whose catalog join cannot be completed.
type IntegrityError struct {
	DestinationID string
	Missing       string // itinerary|verification
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog data integrity: destination %q has no %s", e.DestinationID, e.Missing)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
