package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/playsignal/quotaledger/pkg/plan"
)

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()

	catalog := plan.NewCatalog()

	t.Run("known plan", func(t *testing.T) {
		t.Parallel()

		p := catalog.Resolve(plan.Professional)
		assert.Equal(t, plan.Professional, p.ID)
		assert.Equal(t, "Professional", p.Name)
	})

	t.Run("unknown plan falls back to starter", func(t *testing.T) {
		t.Parallel()

		p := catalog.Resolve(plan.ID("platinum"))
		assert.Equal(t, plan.Starter, p.ID)
	})

	t.Run("empty plan falls back to starter", func(t *testing.T) {
		t.Parallel()

		p := catalog.Resolve("")
		assert.Equal(t, plan.Starter, p.ID)
	})
}

func TestCatalog_Limit(t *testing.T) {
	t.Parallel()

	catalog := plan.NewCatalog()

	tests := []struct {
		name    string
		plan    plan.ID
		feature plan.Feature
		want    int64
	}{
		{"starter cross matches", plan.Starter, plan.FeatureCrossMatches, 5},
		{"starter copy variations", plan.Starter, plan.FeatureCopyVariations, 20},
		{"professional creator matches", plan.Professional, plan.FeatureCreatorMatches, 100},
		{"studio community opportunities", plan.Studio, plan.FeatureCommunityOpportunities, 500},
		{"enterprise is unlimited", plan.Enterprise, plan.FeatureCrossMatches, plan.Unlimited},
		{"unknown plan gets starter limit", plan.ID("platinum"), plan.FeatureCrossMatches, 5},
		{"unknown feature is zero", plan.Starter, plan.Feature("teleports"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, catalog.Limit(tt.plan, tt.feature))
		})
	}
}

func TestCatalog_HasSoftCap(t *testing.T) {
	t.Parallel()

	catalog := plan.NewCatalog()

	tests := []struct {
		name    string
		plan    plan.ID
		feature plan.Feature
		want    bool
	}{
		{"professional creator matches", plan.Professional, plan.FeatureCreatorMatches, true},
		{"professional community opportunities", plan.Professional, plan.FeatureCommunityOpportunities, true},
		{"professional cross matches stays hard", plan.Professional, plan.FeatureCrossMatches, false},
		{"studio creator matches", plan.Studio, plan.FeatureCreatorMatches, true},
		{"starter has no soft caps", plan.Starter, plan.FeatureCreatorMatches, false},
		{"enterprise has no soft caps", plan.Enterprise, plan.FeatureCreatorMatches, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, catalog.HasSoftCap(tt.plan, tt.feature))
		})
	}
}

func TestShouldWarnSoftCap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		usage int64
		limit int64
		want  bool
	}{
		{"well below threshold", 50, 100, false},
		{"just below threshold", 89, 100, false},
		{"exactly at threshold", 90, 100, true},
		{"above threshold", 91, 100, true},
		{"at limit", 100, 100, true},
		{"over limit", 150, 100, true},
		{"small limit below", 4, 5, false},
		{"small limit at threshold", 5, 5, true},
		{"unlimited never warns", 1000000, plan.Unlimited, false},
		{"zero usage zero limit", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, plan.ShouldWarnSoftCap(tt.usage, tt.limit))
		})
	}
}

func TestIsUnlimited(t *testing.T) {
	t.Parallel()

	assert.True(t, plan.IsUnlimited(plan.Unlimited))
	assert.False(t, plan.IsUnlimited(0))
	assert.False(t, plan.IsUnlimited(100))
}

func TestFeatures(t *testing.T) {
	t.Parallel()

	features := plan.Features()
	assert.Len(t, features, 4)
	assert.Contains(t, features, plan.FeatureCrossMatches)
	assert.Contains(t, features, plan.FeatureCommunityOpportunities)
	assert.Contains(t, features, plan.FeatureCreatorMatches)
	assert.Contains(t, features, plan.FeatureCopyVariations)

	// Mutating the returned slice must not affect the package state.
	features[0] = plan.Feature("mutated")
	assert.Equal(t, plan.FeatureCrossMatches, plan.Features()[0])
}

func TestNewCatalogWithPlans_DeepCopy(t *testing.T) {
	t.Parallel()

	source := map[plan.ID]plan.Plan{
		plan.Starter: {
			ID:     plan.Starter,
			Name:   "Starter",
			Limits: map[plan.Feature]int64{plan.FeatureCrossMatches: 5},
		},
	}
	catalog := plan.NewCatalogWithPlans(source)

	source[plan.Starter].Limits[plan.FeatureCrossMatches] = 99

	assert.Equal(t, int64(5), catalog.Limit(plan.Starter, plan.FeatureCrossMatches))
}
