package guard

import "errors"

// ErrLimitExceeded is the only user-visible rejection this subsystem
// produces. It wraps a human-readable message naming the plan, feature and
// usage figures, suitable for surfacing directly in an upgrade prompt.
var ErrLimitExceeded = errors.New("guard.errors.limit_exceeded")
