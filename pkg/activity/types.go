package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType classifies an activity log entry.
type EventType string

const (
	// EventUpsellOpportunity marks a soft-cap breach worth a sales nudge.
	EventUpsellOpportunity EventType = "upsell_opportunity"
)

// Event is a single append-only activity log entry.
type Event struct {
	ID        uuid.UUID      `json:"id"`
	OrgID     uuid.UUID      `json:"org_id"`
	Type      EventType      `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks the fields required of every event.
func (e *Event) Validate() error {
	if e.Type == "" {
		return fmt.Errorf("%w: type is required", ErrEventValidation)
	}
	if e.OrgID == uuid.Nil {
		return fmt.Errorf("%w: org id is required", ErrEventValidation)
	}
	return nil
}
