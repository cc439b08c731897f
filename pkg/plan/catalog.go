package plan

import (
	"maps"
	"slices"
)

// Catalog is a static, immutable plan lookup. All lookups are total:
// unknown plans resolve to DefaultPlan, unknown features to a zero limit.
type Catalog struct {
	plans map[ID]Plan
}

// NewCatalog returns a catalog with the built-in PlaySignal plans.
func NewCatalog() *Catalog {
	return NewCatalogWithPlans(builtinPlans())
}

// NewCatalogWithPlans returns a catalog over a deep copy of the given plans.
// Intended for tests and alternative tier configurations; the copy keeps the
// catalog immutable after construction.
func NewCatalogWithPlans(plans map[ID]Plan) *Catalog {
	copied := make(map[ID]Plan, len(plans))
	for id, p := range plans {
		copied[id] = Plan{
			ID:       p.ID,
			Name:     p.Name,
			Limits:   maps.Clone(p.Limits),
			SoftCaps: slices.Clone(p.SoftCaps),
		}
	}
	return &Catalog{plans: copied}
}

// Resolve returns the plan for id, falling back to DefaultPlan when the id
// is unknown. A misconfigured organization record must never resolve to
// anything more permissive than the starter tier.
func (c *Catalog) Resolve(id ID) Plan {
	if p, ok := c.plans[id]; ok {
		return p
	}
	return c.plans[DefaultPlan]
}

// Limit returns the monthly cap for feature under the given plan.
// A feature absent from the plan's limit map yields 0, not Unlimited.
func (c *Catalog) Limit(id ID, feature Feature) int64 {
	p := c.Resolve(id)
	if limit, ok := p.Limits[feature]; ok {
		return limit
	}
	return 0
}

// HasSoftCap reports whether breaching the cap for the plan/feature pair
// warns instead of blocking.
func (c *Catalog) HasSoftCap(id ID, feature Feature) bool {
	p := c.Resolve(id)
	return slices.Contains(p.SoftCaps, feature)
}

// softCapWarnNumerator/Denominator encode the 90% warning threshold
// without floating point: warn once usage*10 >= limit*9.
const (
	softCapWarnNumerator   = 9
	softCapWarnDenominator = 10
)

// ShouldWarnSoftCap reports whether usage has crossed the 90% warning
// threshold of a finite limit. Unlimited limits never warn.
func ShouldWarnSoftCap(usage, limit int64) bool {
	if IsUnlimited(limit) || limit < 0 {
		return false
	}
	return usage*softCapWarnDenominator >= limit*softCapWarnNumerator
}

func builtinPlans() map[ID]Plan {
	return map[ID]Plan{
		Starter: {
			ID:   Starter,
			Name: "Starter",
			Limits: map[Feature]int64{
				FeatureCrossMatches:           5,
				FeatureCommunityOpportunities: 10,
				FeatureCreatorMatches:         10,
				FeatureCopyVariations:         20,
			},
			// Starter caps are hard: the whole point of the free tier
			// is that running out prompts an upgrade.
			SoftCaps: nil,
		},
		Professional: {
			ID:   Professional,
			Name: "Professional",
			Limits: map[Feature]int64{
				FeatureCrossMatches:           50,
				FeatureCommunityOpportunities: 100,
				FeatureCreatorMatches:         100,
				FeatureCopyVariations:         200,
			},
			SoftCaps: []Feature{
				FeatureCommunityOpportunities,
				FeatureCreatorMatches,
			},
		},
		Studio: {
			ID:   Studio,
			Name: "Studio",
			Limits: map[Feature]int64{
				FeatureCrossMatches:           200,
				FeatureCommunityOpportunities: 500,
				FeatureCreatorMatches:         500,
				FeatureCopyVariations:         1000,
			},
			SoftCaps: []Feature{
				FeatureCommunityOpportunities,
				FeatureCreatorMatches,
			},
		},
		Enterprise: {
			ID:   Enterprise,
			Name: "Enterprise",
			Limits: map[Feature]int64{
				FeatureCrossMatches:           Unlimited,
				FeatureCommunityOpportunities: Unlimited,
				FeatureCreatorMatches:         Unlimited,
				FeatureCopyVariations:         Unlimited,
			},
			SoftCaps: nil,
		},
	}
}
