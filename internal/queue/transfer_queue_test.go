package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/desertwitch/migover/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTransferQueue_Success tests the factory function.
func TestNewTransferQueue_Success(t *testing.T) {
	t.Parallel()

	queue := NewTransferQueue()

	require.NotNil(t, queue, "NewTransferQueue() should return a non-nil value")
	require.NotNil(t, queue.GenericQueue, "NewTransferQueue() should initialize the embedded GenericQueue")
	assert.Equal(t, uint64(0), queue.bytesTransferred, "NewTransferQueue() should initialize bytesTransferred to 0")
}

// TestTransferQueueDequeueAndProcessConc_Fail_Panic tests the non-supported
// concurrent processing.
func TestTransferQueueDequeueAndProcessConc_Fail_Panic(t *testing.T) {
	t.Parallel()

	queue := NewTransferQueue()

	assert.Panics(t, func() {
		ctx := t.Context()
		_ = queue.DequeueAndProcessConc(ctx, 2, func(e *schema.Entry) int { return 0 })
	}, "DequeueAndProcessConc should panic when called on TransferQueue")
}

// TestTransferQueueAddBytesTransferred_Success tests adding transferred bytes.
func TestTransferQueueAddBytesTransferred_Success(t *testing.T) {
	t.Parallel()

	queue := NewTransferQueue()

	queue.AddBytesTransferred(100)
	assert.Equal(t, uint64(100), queue.bytesTransferred, "AddBytesTransferred should add bytes to the total")

	queue.AddBytesTransferred(50)
	assert.Equal(t, uint64(150), queue.bytesTransferred, "AddBytesTransferred should accumulate bytes correctly")

	queue.AddBytesTransferred(0)
	assert.Equal(t, uint64(150), queue.bytesTransferred, "AddBytesTransferred with 0 should not change the total")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			queue.AddBytesTransferred(uint64(1))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			queue.AddBytesTransferred(uint64(1))
		}
	}()

	wg.Wait()

	assert.Equal(t, uint64(250), queue.bytesTransferred, "AddBytesTransferred should sum properly under concurrence.")
	assert.Equal(t, uint64(250), queue.BytesTransferred(), "BytesTransferred should return the accumulated total")
}

// TestTransferQueueProgress_Success tests progress reporting.
func TestTransferQueueProgress_Success(t *testing.T) {
	t.Parallel()

	queue := NewTransferQueue()
	entry := &schema.Entry{Name: "file.bin"}

	queue.Enqueue(entry)
	item, ok := queue.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, item, entry)
	queue.SetSuccess(item)

	queue.AddBytesTransferred(1000)
	time.Sleep(10 * time.Millisecond)

	progress := queue.Progress()
	assert.Equal(t, "bytes/sec", progress.TransferSpeedUnit, "Progress should use 'bytes/sec' as the transfer speed unit")
	assert.Equal(t, 1, progress.SuccessItems, "Progress should report completed items correctly")

	queue = NewTransferQueue()

	queue.Enqueue(entry)
	queue.Enqueue(entry)

	item, ok = queue.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, item, entry)
	queue.SetSuccess(item)

	queue.AddBytesTransferred(1000)

	progress = queue.Progress()

	assert.Equal(t, "bytes/sec", progress.TransferSpeedUnit, "Progress should use 'bytes/sec' as the transfer speed unit")
	assert.GreaterOrEqual(t, progress.TransferSpeed, 0.0, "Transfer speed should be non-negative when active transfers exist")
}
