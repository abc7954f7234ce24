package batch

import (
	"sync/atomic"
)

// OperationID is an opaque handle addressing an operation in a scheduler.
// IDs are unique process-wide and never reused.
type OperationID uint64

// idCounter is the process-wide operation ID generator
var idCounter atomic.Uint64

// nextOperationID returns a fresh operation ID
func nextOperationID() OperationID {
	return OperationID(idCounter.Add(1))
}
