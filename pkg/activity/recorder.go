package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/playsignal/quotaledger/pkg/plan"
)

// Storage persists activity events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// Recorder builds and stores activity events. It is the write-side façade
// the rest of the ledger talks to; callers treat failures as best-effort
// telemetry loss, never as a reason to block the underlying action.
type Recorder struct {
	storage Storage
	now     func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderClock overrides the wall clock used for event timestamps.
func WithRecorderClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder returns a Recorder over the given storage.
// Panics on nil storage to fail fast at wiring time.
func NewRecorder(storage Storage, opts ...RecorderOption) *Recorder {
	if storage == nil {
		panic("activity: storage cannot be nil")
	}
	r := &Recorder{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record validates and stores an arbitrary event, stamping id and time.
func (r *Recorder) Record(ctx context.Context, event Event) error {
	event.ID = uuid.New()
	event.CreatedAt = r.now().UTC()

	if err := event.Validate(); err != nil {
		return err
	}
	return r.storage.Store(ctx, event)
}

// UpsellOpportunity records a soft-cap breach for the given feature,
// carrying the usage figures sales tooling needs to rank the lead.
func (r *Recorder) UpsellOpportunity(ctx context.Context, orgID uuid.UUID, feature plan.Feature, currentUsage, limit int64) error {
	return r.Record(ctx, Event{
		OrgID: orgID,
		Type:  EventUpsellOpportunity,
		Metadata: map[string]any{
			"feature":       string(feature),
			"current_usage": currentUsage,
			"limit":         limit,
		},
	})
}
