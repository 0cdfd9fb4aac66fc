package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrSubscription marks a failed or terminated snapshot stream.
	// Fatal to synchronization, not to the process: the cache freezes
	// at its last known state and the condition is surfaced as a
	// warning on published views.
	ErrSubscription = errors.New("snapshot subscription failed")
)
