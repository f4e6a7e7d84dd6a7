package configuration

import "errors"

var (
	// ErrBadLogLevel occurs when an unknown logging level is configured.
	ErrBadLogLevel = errors.New("unknown logging level")

	// ErrBadMode occurs when an unknown migration mode is configured.
	ErrBadMode = errors.New("unknown migration mode")

	// ErrBadWorkers occurs when an impossible worker count is configured.
	ErrBadWorkers = errors.New("worker count must be at least 1")
)
