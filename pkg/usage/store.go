package usage

import (
	"context"

	"github.com/google/uuid"

	"github.com/playsignal/quotaledger/pkg/plan"
)

// Store persists per-organization usage counters keyed by feature and
// billing period. All reads are scoped to the current period; rows from
// earlier periods are kept as history and simply never matched again.
type Store interface {
	// Count returns the counter value for the feature within the current
	// period. A missing row is zero usage, not an error.
	Count(ctx context.Context, orgID uuid.UUID, feature plan.Feature) (int64, error)

	// Increment atomically adds n to the counter for the current period,
	// creating the row if absent, and returns the new total. The increment
	// must be a single atomic operation against the backing store so that
	// concurrent calls never lose updates.
	Increment(ctx context.Context, orgID uuid.UUID, feature plan.Feature, n int64) (int64, error)

	// AllCounts returns the current-period count for every known feature.
	// Features without a counter row are present with value 0; the returned
	// map never omits a key.
	AllCounts(ctx context.Context, orgID uuid.UUID) (map[plan.Feature]int64, error)

	// Reset deletes every counter row for the organization, across all
	// periods and features. Administrative use only.
	Reset(ctx context.Context, orgID uuid.UUID) error
}
