package usage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playsignal/quotaledger/pkg/plan"
	"github.com/playsignal/quotaledger/pkg/usage"
)

func TestMemoryStore_Increment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first increment creates counter", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		orgID := uuid.New()

		count, err := store.Increment(ctx, orgID, plan.FeatureCrossMatches, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		got, err := store.Count(ctx, orgID, plan.FeatureCrossMatches)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got)
	})

	t.Run("sequential increments accumulate", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		orgID := uuid.New()

		_, err := store.Increment(ctx, orgID, plan.FeatureCreatorMatches, 1)
		require.NoError(t, err)
		count, err := store.Increment(ctx, orgID, plan.FeatureCreatorMatches, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		got, err := store.Count(ctx, orgID, plan.FeatureCreatorMatches)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got)
	})

	t.Run("features are counted independently", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		orgID := uuid.New()

		_, err := store.Increment(ctx, orgID, plan.FeatureCrossMatches, 2)
		require.NoError(t, err)

		got, err := store.Count(ctx, orgID, plan.FeatureCopyVariations)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("organizations are counted independently", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()

		_, err := store.Increment(ctx, uuid.New(), plan.FeatureCrossMatches, 5)
		require.NoError(t, err)

		got, err := store.Count(ctx, uuid.New(), plan.FeatureCrossMatches)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()

		_, err := store.Increment(ctx, uuid.New(), plan.FeatureCrossMatches, 0)
		assert.ErrorIs(t, err, usage.ErrInvalidIncrement)

		_, err = store.Increment(ctx, uuid.New(), plan.FeatureCrossMatches, -1)
		assert.ErrorIs(t, err, usage.ErrInvalidIncrement)
	})

	t.Run("concurrent increments never lose updates", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		orgID := uuid.New()

		const workers = 50
		var wg sync.WaitGroup
		wg.Add(workers)
		for range workers {
			go func() {
				defer wg.Done()
				_, _ = store.Increment(ctx, orgID, plan.FeatureCrossMatches, 1)
			}()
		}
		wg.Wait()

		got, err := store.Count(ctx, orgID, plan.FeatureCrossMatches)
		require.NoError(t, err)
		assert.Equal(t, int64(workers), got)
	})
}

func TestMemoryStore_Count_MissingIsZero(t *testing.T) {
	t.Parallel()

	store := usage.NewMemoryStore()

	got, err := store.Count(context.Background(), uuid.New(), plan.FeatureCommunityOpportunities)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMemoryStore_AllCounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()
	orgID := uuid.New()

	_, err := store.Increment(ctx, orgID, plan.FeatureCreatorMatches, 7)
	require.NoError(t, err)

	counts, err := store.AllCounts(ctx, orgID)
	require.NoError(t, err)

	// Every known feature is present, unset ones default to zero.
	assert.Len(t, counts, len(plan.Features()))
	assert.Equal(t, int64(7), counts[plan.FeatureCreatorMatches])
	assert.Zero(t, counts[plan.FeatureCrossMatches])
	assert.Zero(t, counts[plan.FeatureCommunityOpportunities])
	assert.Zero(t, counts[plan.FeatureCopyVariations])
}

func TestMemoryStore_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()
	orgID := uuid.New()
	otherOrg := uuid.New()

	_, err := store.Increment(ctx, orgID, plan.FeatureCrossMatches, 4)
	require.NoError(t, err)
	_, err = store.Increment(ctx, otherOrg, plan.FeatureCrossMatches, 2)
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, orgID))

	got, err := store.Count(ctx, orgID, plan.FeatureCrossMatches)
	require.NoError(t, err)
	assert.Zero(t, got)

	// Other organizations are untouched.
	got, err = store.Count(ctx, otherOrg, plan.FeatureCrossMatches)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestMemoryStore_PeriodRollover(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var (
		mu  sync.Mutex
		now = time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	store := usage.NewMemoryStore(usage.WithMemoryClock(clock))
	orgID := uuid.New()

	_, err := store.Increment(ctx, orgID, plan.FeatureCrossMatches, 5)
	require.NoError(t, err)

	// Advance into April: the March counter must no longer be visible.
	mu.Lock()
	now = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	mu.Unlock()

	got, err := store.Count(ctx, orgID, plan.FeatureCrossMatches)
	require.NoError(t, err)
	assert.Zero(t, got)

	// The new period starts counting from scratch.
	count, err := store.Increment(ctx, orgID, plan.FeatureCrossMatches, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
