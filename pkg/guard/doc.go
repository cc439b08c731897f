// Package guard wraps rate-limited operations with quota enforcement.
//
// A wrapped action only runs when the limit evaluator allows it, and only
// counts against the quota when the action itself reports that it consumed
// one. The consumed flag is an explicit return value rather than an
// inference from a nil result, so actions that legitimately return nothing
// on success are still counted correctly.
//
//	search := guard.Wrap(g, plan.FeatureCreatorMatches,
//	    func(ctx context.Context, orgID uuid.UUID, q Query) ([]Match, bool, error) {
//	        matches, err := runSearch(ctx, q)
//	        return matches, err == nil && len(matches) > 0, err
//	    })
//
//	matches, err := search(ctx, orgID, query)
//	if errors.Is(err, guard.ErrLimitExceeded) {
//	    // show the upgrade prompt carried in err's message
//	}
package guard
