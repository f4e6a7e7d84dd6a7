package queue

import (
	"github.com/desertwitch/migover/internal/schema"
)

// VerifyQueue is a queue holding the files of a migration awaiting digest
// re-verification against their recorded checksums.
//
// VerifyQueue embeds a [GenericQueue].
//
// As verification is a read-only operation, [VerifyQueue] contained items can
// also be processed concurrently.
//
// The items contained within [VerifyQueue] are [schema.Entry].
type VerifyQueue struct {
	*GenericQueue[*schema.Entry]
}

// NewVerifyQueue returns a pointer to a new [VerifyQueue].
func NewVerifyQueue() *VerifyQueue {
	return &VerifyQueue{
		GenericQueue: NewGenericQueue[*schema.Entry](),
	}
}

// Progress returns the [Progress] of the [VerifyQueue].
func (q *VerifyQueue) Progress() Progress {
	qProgress := q.GenericQueue.Progress()
	qProgress.TransferSpeedUnit = "files/sec"

	return qProgress
}
