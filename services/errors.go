package services

import "errors"

// Sentinel errors for the reservation core. Controllers map these onto
// HTTP status codes; callers distinguish the expected availability
// failure (ErrConflict) from unexpected storage errors.
var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("time slot unavailable")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("record not found")
)
