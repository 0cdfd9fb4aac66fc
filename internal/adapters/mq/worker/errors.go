package worker

import "errors"

// Sentinel kinds for dispatch errors.
var (
	// ErrRemoteWrite marks a create/delete call that failed at the
	// remote store. Recoverable; the cache is unaffected.
	ErrRemoteWrite = errors.New("remote write failed")
)
