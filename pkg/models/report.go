package models

import (
	"time"
)

// BatchReport represents the outcome of a finished operation
type BatchReport struct {
	// ID is a unique report identifier
	ID string `json:"id"`

	// Kind is the operation kind
	Kind OperationKind `json:"kind"`

	// Destination is the operation-level destination directory, if any
	Destination string `json:"destination,omitempty"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Status is the terminal operation status
	Status OperationStatus `json:"status"`

	// Progress is the final progress snapshot
	Progress OperationProgress `json:"progress"`

	// FailedItems lists items that failed or were skipped
	FailedItems []FailedItem `json:"failed_items,omitempty"`
}

// FailedCount returns the number of items that actually failed
// (skipped items excluded)
func (r *BatchReport) FailedCount() int {
	n := 0
	for _, item := range r.FailedItems {
		if !item.Skipped {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of intentionally skipped items
func (r *BatchReport) SkippedCount() int {
	n := 0
	for _, item := range r.FailedItems {
		if item.Skipped {
			n++
		}
	}
	return n
}

// ExitCode returns the process exit code for the terminal status
func (s OperationStatus) ExitCode() int {
	switch s {
	case StatusCompleted:
		return 0
	case StatusFailed:
		return 1
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
