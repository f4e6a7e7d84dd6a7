package main

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// memoryMonitorInterval is the sampling interval of a [memoryObserver].
	memoryMonitorInterval = 100 * time.Millisecond
)

// memoryObserver samples the runtime allocation size over the program
// lifetime and remembers the highest value seen.
type memoryObserver struct {
	sync.RWMutex
	maxAlloc uint64
	stopChan chan struct{}
}

// newMemoryObserver returns a pointer to a new, already sampling
// [memoryObserver]. Sampling needs to be ended with a (usually deferred)
// call to [memoryObserver.Stop] before program exit.
func newMemoryObserver(ctx context.Context) *memoryObserver {
	obs := &memoryObserver{
		stopChan: make(chan struct{}),
	}
	go obs.monitor(ctx)

	return obs
}

// GetMaxAlloc returns the peak recorded allocation size in a thread-safe
// manner.
func (o *memoryObserver) GetMaxAlloc() uint64 {
	o.RLock()
	defer o.RUnlock()

	return o.maxAlloc
}

// Stop ends the sampling and reports the peak recorded allocation size with
// [slog.Info].
func (o *memoryObserver) Stop() {
	close(o.stopChan)
	slog.Info("Memory consumption peaked at:", "maxAlloc", humanize.Bytes(o.GetMaxAlloc()))
}

// monitor reads [runtime.MemStats] every [memoryMonitorInterval], keeping
// the highest allocation size seen.
func (o *memoryObserver) monitor(ctx context.Context) {
	ticker := time.NewTicker(memoryMonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			o.Lock()
			if m.Alloc > o.maxAlloc {
				o.maxAlloc = m.Alloc
			}
			o.Unlock()
		}
	}
}
