package store

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrValidation marks a malformed create draft. Rejected before
	// anything reaches the remote store; recoverable.
	ErrValidation = errors.New("invalid draft")
)
