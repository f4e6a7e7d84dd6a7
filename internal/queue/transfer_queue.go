package queue

import (
	"context"
	"time"

	"github.com/desertwitch/migover/internal/schema"
)

// TransferQueue is a queue holding the files of a migration in their order of
// transferral to the target directory.
//
// TransferQueue embeds a [GenericQueue].
//
// Beware that [TransferQueue] contained items can only be processed
// sequentially, in order not to operate concurrently within the same
// target directory.
//
// The items contained within [TransferQueue] are [schema.Entry].
type TransferQueue struct {
	*GenericQueue[*schema.Entry]

	// bytesTransferred is the amount of bytes transferred for the
	// [TransferQueue].
	bytesTransferred uint64
}

// NewTransferQueue returns a pointer to a new [TransferQueue].
func NewTransferQueue() *TransferQueue {
	return &TransferQueue{
		GenericQueue: NewGenericQueue[*schema.Entry](),
	}
}

// DequeueAndProcessConc is unsupported by [TransferQueue] and will result in a
// panic when used.
func (q *TransferQueue) DequeueAndProcessConc(ctx context.Context, maxWorkers int, processFunc func(*schema.Entry) int) error { //nolint:revive
	panic("A TransferQueue cannot be processed concurrently.")
}

// AddBytesTransferred adds given transferred bytes to the total amount
// transferred for that [TransferQueue].
func (q *TransferQueue) AddBytesTransferred(bytes uint64) {
	q.Lock()
	defer q.Unlock()

	q.bytesTransferred += bytes
}

// BytesTransferred returns the total amount of bytes transferred for that
// [TransferQueue].
func (q *TransferQueue) BytesTransferred() uint64 {
	q.RLock()
	defer q.RUnlock()

	return q.bytesTransferred
}

// Progress returns the [Progress] of the [TransferQueue].
func (q *TransferQueue) Progress() Progress {
	qProgress := q.GenericQueue.Progress()

	if qProgress.HasStarted && qProgress.ProcessedItems > 0 && qProgress.ProcessedItems < qProgress.TotalItems {
		elapsed := time.Since(qProgress.StartTime)

		q.RLock()
		bytesPerSec := float64(q.bytesTransferred) / max(elapsed.Seconds(), 1)
		q.RUnlock()

		if bytesPerSec > 0 {
			qProgress.TransferSpeed = bytesPerSec
		}
	}

	qProgress.TransferSpeedUnit = "bytes/sec"

	return qProgress
}
