// Package quota decides whether a rate-limited action is allowed for an
// organization, based on its plan's per-feature monthly limits and the
// usage recorded so far this billing period.
//
// Decision rules, in order:
//
//   - Unlimited features are always allowed; no usage is read.
//   - Soft-capped features are always allowed and carry a warning once
//     usage crosses 90% of the limit.
//   - Hard-capped features block once usage reaches the limit, with a
//     message naming the plan, feature and numbers.
//
// Failure policy is deliberately asymmetric. Infrastructure failures (plan
// lookup, usage read) fail open and are logged; only a successfully
// computed hard-cap breach rejects. Collapsing the two paths would change
// the availability characteristics of every caller.
package quota
