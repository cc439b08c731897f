package plan

// ID identifies a subscription plan.
type ID string

// Available plans, from most to least restrictive.
const (
	Starter      ID = "starter"
	Professional ID = "professional"
	Studio       ID = "studio"
	Enterprise   ID = "enterprise"
)

// DefaultPlan is the fail-safe fallback: an unknown or missing plan value
// must never grant more access than the most restrictive tier.
const DefaultPlan = Starter

// Unlimited marks a feature with no limit (-1).
const Unlimited int64 = -1

// Feature is a rate-limited, countable feature key.
// The set is closed; extend only by code change.
type Feature string

const (
	FeatureCrossMatches           Feature = "cross_matches"
	FeatureCommunityOpportunities Feature = "community_opportunities"
	FeatureCreatorMatches         Feature = "creator_matches"
	FeatureCopyVariations         Feature = "copy_variations"
)

// allFeatures is ordered for deterministic iteration.
var allFeatures = []Feature{
	FeatureCrossMatches,
	FeatureCommunityOpportunities,
	FeatureCreatorMatches,
	FeatureCopyVariations,
}

// Features returns the complete set of countable feature keys.
// Callers that build per-feature maps must cover every key returned here.
func Features() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}

// IsUnlimited reports whether limit is the unlimited sentinel.
func IsUnlimited(limit int64) bool {
	return limit == Unlimited
}

// Plan describes a subscription tier and its per-feature monthly limits.
type Plan struct {
	ID   ID
	Name string
	// Limits maps each countable feature to its monthly cap,
	// or Unlimited for no cap.
	Limits map[Feature]int64
	// SoftCaps lists features whose cap warns instead of blocking.
	SoftCaps []Feature
}
