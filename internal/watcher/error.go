package watcher

import "errors"

var (
	// ErrChannelClosed occurs when an observation channel of the underlying
	// filesystem watcher has closed unexpectedly.
	ErrChannelClosed = errors.New("watcher channel has closed")
)
