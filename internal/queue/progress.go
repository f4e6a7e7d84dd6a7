package queue

import "time"

// Progress describes the processing state of a queue (or queue manager) at
// the point in time of its construction.
type Progress struct {
	// HasStarted is whether processing has started.
	HasStarted bool

	// HasFinished is whether processing has finished.
	HasFinished bool

	// StartTime is when processing has started (zero if not started).
	StartTime time.Time

	// FinishTime is when processing has finished (zero if not finished).
	FinishTime time.Time

	// ProgressPct is the processing progress in percent (0-100).
	ProgressPct float64

	// TotalItems is the total amount of enqueued items.
	TotalItems int

	// ProcessedItems is the amount of items processed so far.
	ProcessedItems int

	// InProgressItems is the amount of items currently processing.
	InProgressItems int

	// SuccessItems is the amount of successfully processed items.
	SuccessItems int

	// SkippedItems is the amount of skipped items.
	SkippedItems int

	// FailedItems is the amount of failed items.
	FailedItems int

	// ETA is the estimated point of processing completion (zero if unknown).
	ETA time.Time

	// TimeLeft is the estimated time until processing completion.
	TimeLeft time.Duration

	// TransferSpeed is the processing speed in [TransferSpeedUnit].
	TransferSpeed float64

	// TransferSpeedUnit is the unit of measurement for [TransferSpeed].
	TransferSpeedUnit string
}
