// Package plan defines the subscription tiers of the quota ledger and the
// per-feature monthly limits attached to each tier.
//
// The catalog is a static lookup, total over its input domain: an unknown
// plan id resolves to the starter tier and an unknown feature resolves to a
// zero limit, so a misconfigured organization record can never gain access
// it did not pay for.
//
// Limits are either a finite non-negative monthly cap or the Unlimited
// sentinel (-1). A cap is hard by default; features listed in a plan's
// SoftCaps warn at 90% usage instead of blocking at 100%.
//
// Basic usage:
//
//	catalog := plan.NewCatalog()
//	limit := catalog.Limit(plan.Professional, plan.FeatureCreatorMatches)
//	if plan.ShouldWarnSoftCap(usage, limit) {
//	    // surface an upgrade nudge
//	}
package plan
