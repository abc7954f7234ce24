package batch

import (
	"errors"
	"sync"

	"github.com/mdubois/filebatch/pkg/logging"
	"github.com/mdubois/filebatch/pkg/models"
)

// DefaultMaxConcurrent is the number of operations allowed to run at once
// unless configured otherwise
const DefaultMaxConcurrent = 2

// ErrNotFound is returned when an operation ID is not in the scheduler
var ErrNotFound = errors.New("operation not found")

// Scheduler owns a collection of operations and decides which pending ones
// to start, bounded by a maximum-concurrency cap. The scheduler performs no
// I/O itself; it only flips operations from pending to in-progress.
type Scheduler struct {
	log logging.Logger

	mu            sync.Mutex
	ops           map[OperationID]*Operation
	order         []OperationID
	maxConcurrent int
}

// NewScheduler creates a scheduler with the given concurrency cap.
// Values below 1 fall back to DefaultMaxConcurrent. A nil logger disables
// logging.
func NewScheduler(maxConcurrent int, log logging.Logger) *Scheduler {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if log == nil {
		log = logging.NewNullLogger()
	}

	return &Scheduler{
		log:           log,
		ops:           make(map[OperationID]*Operation),
		maxConcurrent: maxConcurrent,
	}
}

// Add transfers an operation into the queue without starting it
func (s *Scheduler) Add(op *Operation) OperationID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := op.ID()
	s.ops[id] = op
	s.order = append(s.order, id)

	s.log.Debug("operation queued", logging.Fields{
		"operation": id,
		"kind":      op.Kind(),
	})
	return id
}

// Remove erases an operation from the queue. A non-terminal operation is
// cancelled first and its worker awaited, so the operation is never removed
// while execution is in flight.
func (s *Scheduler) Remove(id OperationID) error {
	s.mu.Lock()
	op, ok := s.ops[id]
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	if !op.GetStatus().IsTerminal() {
		op.Cancel()
		op.WaitForCompletion()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	return nil
}

// removeLocked deletes id from the map and order slice; caller holds the lock
func (s *Scheduler) removeLocked(id OperationID) {
	delete(s.ops, id)
	for i, queued := range s.order {
		if queued == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns the operation with the given ID, or nil and false when unknown
func (s *Scheduler) Get(id OperationID) (*Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, ok := s.ops[id]
	return op, ok
}

// GetPending returns pending operations in FIFO order
func (s *Scheduler) GetPending() []*Operation {
	return s.withStatus(models.StatusPending)
}

// GetActive returns operations currently in progress
func (s *Scheduler) GetActive() []*Operation {
	return s.withStatus(models.StatusInProgress)
}

func (s *Scheduler) withStatus(status models.OperationStatus) []*Operation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Operation
	for _, id := range s.order {
		if op := s.ops[id]; op != nil && op.GetStatus() == status {
			out = append(out, op)
		}
	}
	return out
}

// SetMaxConcurrent updates the concurrency cap. Values below 1 are clamped
// to 1. The cap applies on the next ProcessQueue; running operations are
// not stopped.
func (s *Scheduler) SetMaxConcurrent(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 {
		n = 1
	}
	s.maxConcurrent = n
}

// GetMaxConcurrent returns the concurrency cap
func (s *Scheduler) GetMaxConcurrent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxConcurrent
}

// ProcessQueue starts pending operations in FIFO order while the number of
// in-progress operations is below the cap. This is the sole queue-driven
// path out of the pending state; Start never blocks, so holding the lock
// across it is fine.
func (s *Scheduler) ProcessQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	running := 0
	for _, id := range s.order {
		if op := s.ops[id]; op != nil && op.GetStatus() == models.StatusInProgress {
			running++
		}
	}

	for _, id := range s.order {
		if running >= s.maxConcurrent {
			break
		}
		op := s.ops[id]
		if op == nil || op.GetStatus() != models.StatusPending {
			continue
		}
		if err := op.Start(); err == nil {
			running++
		}
	}
}

// PauseAll pauses every in-progress operation
func (s *Scheduler) PauseAll() {
	for _, op := range s.snapshot() {
		op.Pause()
	}
}

// ResumeAll resumes every paused operation
func (s *Scheduler) ResumeAll() {
	for _, op := range s.snapshot() {
		op.Resume()
	}
}

// CancelAll cancels every non-terminal operation
func (s *Scheduler) CancelAll() {
	for _, op := range s.snapshot() {
		op.Cancel()
	}
}

// ClearCompleted removes all operations in a terminal state
func (s *Scheduler) ClearCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range append([]OperationID(nil), s.order...) {
		if op := s.ops[id]; op != nil && op.GetStatus().IsTerminal() {
			s.removeLocked(id)
		}
	}
}

// snapshot returns the operations in FIFO order without holding the lock
// during the subsequent control calls
func (s *Scheduler) snapshot() []*Operation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Operation, 0, len(s.order))
	for _, id := range s.order {
		if op := s.ops[id]; op != nil {
			out = append(out, op)
		}
	}
	return out
}
