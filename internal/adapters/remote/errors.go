package remote

import "errors"

// Sentinel kinds for remote store errors.
var (
	ErrNotFound = errors.New("document not found")
	ErrClosed   = errors.New("remote store closed")
)
