package usage

import "errors"

// Domain errors for usage counter operations
var (
	ErrFailedToReadCounter      = errors.New("usage.errors.failed_to_read_counter")
	ErrFailedToIncrementCounter = errors.New("usage.errors.failed_to_increment_counter")
	ErrFailedToResetCounters    = errors.New("usage.errors.failed_to_reset_counters")
	ErrInvalidIncrement         = errors.New("usage.errors.invalid_increment")
)
