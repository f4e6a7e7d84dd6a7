package queue

// Manager holds the stage-specific queues of a migration run, for wiring into
// the processing handlers and any progress-observing consumers.
//
// The manager itself holds no state beyond the queues; each queue is
// thread-safe and can be accessed concurrently.
type Manager struct {
	// Transfer is the queue of files awaiting transferral.
	Transfer *TransferQueue

	// Verify is the queue of files awaiting digest re-verification.
	Verify *VerifyQueue
}

// NewManager returns a pointer to a new [Manager] with freshly established
// queues for all migration stages.
func NewManager() *Manager {
	return &Manager{
		Transfer: NewTransferQueue(),
		Verify:   NewVerifyQueue(),
	}
}
