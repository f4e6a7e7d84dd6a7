package queue

import "errors"

var (
	// ErrProcessingAborted occurs when a processFunc has returned
	// [DecisionAbort] and queue processing was stopped ahead of completion.
	ErrProcessingAborted = errors.New("queue processing was aborted")
)
