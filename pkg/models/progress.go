package models

// OperationProgress is an immutable point-in-time snapshot of an operation's
// progress. The worker builds a new value after each item and publishes it
// whole; readers never observe a partially updated snapshot.
type OperationProgress struct {
	// TotalItems and CompletedItems count items. Failed and skipped items
	// count as completed once processed, so the batch keeps moving.
	TotalItems     int
	CompletedItems int

	// TotalBytes and CompletedBytes count bytes across all items
	TotalBytes     int64
	CompletedBytes int64

	// CurrentPath is the source path of the item most recently processed,
	// empty once the operation reaches a terminal state
	CurrentPath string

	// Percentage is 0-100, byte-weighted when total bytes are known,
	// item-count-weighted otherwise
	Percentage float64

	// BytesPerSecond is the sampled instantaneous throughput, 0 when unknown
	BytesPerSecond int64

	// ETASeconds is the estimated time remaining derived from throughput and
	// remaining bytes, 0 when throughput is unknown
	ETASeconds int64
}

// Remaining returns the bytes not yet processed
func (p OperationProgress) Remaining() int64 {
	if p.CompletedBytes >= p.TotalBytes {
		return 0
	}
	return p.TotalBytes - p.CompletedBytes
}
