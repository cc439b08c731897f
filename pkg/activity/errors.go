package activity

import "errors"

// Domain errors for activity log operations
var (
	ErrEventValidation    = errors.New("activity.errors.event_validation")
	ErrFailedToStoreEvent = errors.New("activity.errors.failed_to_store_event")
	ErrWriterClosed       = errors.New("activity.errors.writer_closed")
)
