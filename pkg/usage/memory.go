package usage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playsignal/quotaledger/pkg/period"
	"github.com/playsignal/quotaledger/pkg/plan"
)

// counterKey identifies one counter row: (org, feature, period start).
type counterKey struct {
	orgID       uuid.UUID
	feature     plan.Feature
	periodStart time.Time
}

// MemoryStore is an in-process Store for tests and single-node setups.
// Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[counterKey]int64
	now      func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryClock overrides the wall clock used for period resolution.
// Tests use this to simulate period rollover.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore returns an empty in-memory usage counter store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		counters: make(map[counterKey]int64),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) key(orgID uuid.UUID, feature plan.Feature) counterKey {
	return counterKey{
		orgID:       orgID,
		feature:     feature,
		periodStart: period.Current(s.now()).Start,
	}
}

// Count returns the current-period counter, or 0 when no row exists.
func (s *MemoryStore) Count(ctx context.Context, orgID uuid.UUID, feature plan.Feature) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[s.key(orgID, feature)], nil
}

// Increment adds n to the current-period counter and returns the new total.
func (s *MemoryStore) Increment(ctx context.Context, orgID uuid.UUID, feature plan.Feature, n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrInvalidIncrement
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(orgID, feature)
	s.counters[k] += n
	return s.counters[k], nil
}

// AllCounts returns current-period counts for every known feature.
func (s *MemoryStore) AllCounts(ctx context.Context, orgID uuid.UUID) (map[plan.Feature]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[plan.Feature]int64, len(plan.Features()))
	for _, f := range plan.Features() {
		out[f] = s.counters[s.key(orgID, f)]
	}
	return out, nil
}

// Reset removes every counter for the organization, all periods included.
func (s *MemoryStore) Reset(ctx context.Context, orgID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.counters {
		if k.orgID == orgID {
			delete(s.counters, k)
		}
	}
	return nil
}
