package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/mdubois/filebatch/pkg/fsops"
	"github.com/mdubois/filebatch/pkg/logging"
	"github.com/mdubois/filebatch/pkg/models"
)

// CompletionCallback is invoked exactly once when an operation reaches a
// terminal state. success is true iff no item failed and the operation was
// not cancelled.
type CompletionCallback func(success bool, errorSummary string)

// ProgressCallback receives progress snapshots from the operation's worker.
// Snapshots arrive in strictly increasing order of completed items.
type ProgressCallback func(models.OperationProgress)

// Operation is a single batch job. It owns an ordered list of items,
// processes them sequentially on a dedicated worker goroutine, and exposes
// pause/resume/cancel control.
//
// Configuration (items, destination, callbacks) is only accepted while the
// operation is pending; the item list is immutable once started.
type Operation struct {
	id   OperationID
	kind models.OperationKind
	fs   fsops.Filesystem
	log  logging.Logger

	mu   sync.Mutex
	cond *sync.Cond

	status            models.OperationStatus
	items             []models.OperationItem
	destDir           string
	defaultResolution models.ConflictResolution
	resolver          models.ConflictResolver
	onProgress        ProgressCallback
	onComplete        CompletionCallback

	pauseRequested  bool
	cancelRequested bool

	progress models.OperationProgress
	failed   []models.FailedItem
	speed    speedTracker

	done chan struct{}
}

// NewOperation creates a pending operation of the given kind.
// A nil logger disables logging.
func NewOperation(kind models.OperationKind, fs fsops.Filesystem, log logging.Logger) *Operation {
	if log == nil {
		log = logging.NewNullLogger()
	}

	op := &Operation{
		id:                nextOperationID(),
		kind:              kind,
		fs:                fs,
		log:               log,
		status:            models.StatusPending,
		defaultResolution: models.ResolutionAsk,
		done:              make(chan struct{}),
	}
	op.cond = sync.NewCond(&op.mu)

	return op
}

// ID returns the operation's unique handle
func (op *Operation) ID() OperationID {
	return op.id
}

// Kind returns the operation kind
func (op *Operation) Kind() models.OperationKind {
	return op.kind
}

// AddItem appends an item to the operation.
// Items can only be added before Start.
func (op *Operation) AddItem(item models.OperationItem) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot add items in status %q", op.id, op.status)
	}

	op.items = append(op.items, item)
	op.progress.TotalItems = len(op.items)
	op.progress.TotalBytes += item.Size
	return nil
}

// AddItems appends multiple items, stopping at the first rejection
func (op *Operation) AddItems(items []models.OperationItem) error {
	for _, item := range items {
		if err := op.AddItem(item); err != nil {
			return err
		}
	}
	return nil
}

// SetDestination sets the destination directory for copy and move
// operations. Effective destinations are dir + the source base name.
func (op *Operation) SetDestination(dir string) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot set destination in status %q", op.id, op.status)
	}

	op.destDir = dir
	return nil
}

// SetConflictResolution sets the default policy applied when no resolver
// is registered
func (op *Operation) SetConflictResolution(resolution models.ConflictResolution) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot set conflict resolution in status %q", op.id, op.status)
	}

	op.defaultResolution = resolution
	return nil
}

// SetConflictResolver registers the resolver consulted on collisions.
// The resolver is called synchronously from the worker.
func (op *Operation) SetConflictResolver(resolver models.ConflictResolver) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot set resolver in status %q", op.id, op.status)
	}

	op.resolver = resolver
	return nil
}

// OnProgress registers the progress callback
func (op *Operation) OnProgress(cb ProgressCallback) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot set progress callback in status %q", op.id, op.status)
	}

	op.onProgress = cb
	return nil
}

// OnComplete registers the completion callback
func (op *Operation) OnComplete(cb CompletionCallback) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot set completion callback in status %q", op.id, op.status)
	}

	op.onComplete = cb
	return nil
}

// Start spawns the worker. It succeeds only from the pending state;
// starting twice, or starting a cancelled operation, is rejected.
func (op *Operation) Start() error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPending {
		return fmt.Errorf("operation %d: cannot start from status %q", op.id, op.status)
	}

	totalBytes := int64(0)
	for _, item := range op.items {
		totalBytes += item.Size
	}
	op.progress = models.OperationProgress{
		TotalItems: len(op.items),
		TotalBytes: totalBytes,
	}

	op.status = models.StatusInProgress
	op.log.Info("operation started", logging.Fields{
		"operation": op.id,
		"kind":      op.kind,
		"items":     len(op.items),
		"bytes":     totalBytes,
	})

	go op.run()
	return nil
}

// Pause asks the worker to block before the next item boundary.
// Only an in-progress operation can be paused; repeated calls are no-ops.
func (op *Operation) Pause() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusInProgress {
		return
	}

	op.status = models.StatusPaused
	op.pauseRequested = true
	op.log.Debug("operation paused", logging.Fields{"operation": op.id})
}

// Resume wakes a paused worker. Calling Resume on a non-paused operation
// has no effect.
func (op *Operation) Resume() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.status != models.StatusPaused {
		return
	}

	op.status = models.StatusInProgress
	op.pauseRequested = false
	op.cond.Broadcast()
	op.log.Debug("operation resumed", logging.Fields{"operation": op.id})
}

// Cancel requests cancellation. It is idempotent, safe from any goroutine,
// and never blocks. A pending operation becomes cancelled immediately; a
// running one stops at the next item boundary. A paused worker is woken so
// it can observe the cancellation.
func (op *Operation) Cancel() {
	op.mu.Lock()

	if op.status.IsTerminal() {
		op.mu.Unlock()
		return
	}

	if op.status == models.StatusPending {
		op.status = models.StatusCancelled
		op.cancelRequested = true
		cb := op.onComplete
		op.mu.Unlock()

		op.log.Info("operation cancelled before start", logging.Fields{"operation": op.id})
		if cb != nil {
			cb(false, "operation cancelled")
		}
		close(op.done)
		return
	}

	op.cancelRequested = true
	op.pauseRequested = false
	op.cond.Broadcast()
	op.mu.Unlock()

	op.log.Info("operation cancellation requested", logging.Fields{"operation": op.id})
}

// WaitForCompletion blocks until the operation has reached a terminal state
// and the completion callback has returned. Afterwards the worker is fully
// stopped; calling it from the completion callback itself would deadlock.
func (op *Operation) WaitForCompletion() {
	<-op.done
}

// GetStatus returns the current status
func (op *Operation) GetStatus() models.OperationStatus {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.status
}

// GetProgress returns a consistent copy of the latest progress snapshot
func (op *Operation) GetProgress() models.OperationProgress {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.progress
}

// GetFailedItems returns a copy of the failed and skipped item records.
// Readable at any time, including after completion.
func (op *Operation) GetFailedItems() []models.FailedItem {
	op.mu.Lock()
	defer op.mu.Unlock()

	out := make([]models.FailedItem, len(op.failed))
	copy(out, op.failed)
	return out
}

// GetDescription returns a human-readable summary such as "Copying 42 items"
func (op *Operation) GetDescription() string {
	op.mu.Lock()
	n := len(op.items)
	op.mu.Unlock()

	noun := "items"
	if n == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%s %d %s", op.kind.Verb(), n, noun)
}

// GetDestination returns the operation-level destination directory
func (op *Operation) GetDestination() string {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.destDir
}

// run is the worker loop. It processes items strictly in order, honoring
// pause and cancel requests at item boundaries only.
func (op *Operation) run() {
	for i := range op.items {
		if op.waitIfPaused() {
			break
		}

		op.processItem(&op.items[i])
		op.advance(&op.items[i])
	}

	op.finish()
}

// waitIfPaused blocks while a pause is requested and reports whether
// cancellation was observed
func (op *Operation) waitIfPaused() bool {
	op.mu.Lock()
	defer op.mu.Unlock()

	for op.pauseRequested && !op.cancelRequested {
		op.cond.Wait()
	}
	return op.cancelRequested
}

// processItem executes one item, absorbing any error into the failed list
func (op *Operation) processItem(item *models.OperationItem) {
	switch op.kind {
	case models.KindDelete:
		op.deleteItem(item)
	case models.KindCopy, models.KindMove, models.KindRename:
		op.placeItem(item)
	default:
		op.recordFailure(item, fmt.Errorf("unknown operation kind %q", op.kind))
	}
}

func (op *Operation) deleteItem(item *models.OperationItem) {
	var err error
	if item.IsDir {
		err = op.fs.RemoveDirectoryRecursive(item.Source)
	} else {
		err = op.fs.RemoveFile(item.Source)
	}
	if err != nil {
		op.recordFailure(item, err)
	}
}

// placeItem handles copy, move and rename, including conflict handling when
// the effective destination already exists
func (op *Operation) placeItem(item *models.OperationItem) {
	dst := op.effectiveDestination(item)
	if dst == "" {
		op.recordFailure(item, errors.New("no destination configured"))
		return
	}

	if op.fs.Exists(dst) {
		switch resolution := op.resolveConflict(item, dst); resolution {
		case models.ResolutionSkip:
			op.recordSkip(item, dst)
			return

		case models.ResolutionRename, models.ResolutionKeepBoth:
			renamed, err := uniqueDestination(op.fs, dst)
			if err != nil {
				op.recordFailure(item, err)
				return
			}
			dst = renamed

		case models.ResolutionOverwrite:
			if err := op.removeExisting(dst); err != nil {
				op.recordFailure(item, err)
				return
			}
		}
	}

	if parent := filepath.Dir(dst); parent != "." && parent != string(filepath.Separator) {
		if err := op.fs.CreateDirectories(parent); err != nil {
			op.recordFailure(item, err)
			return
		}
	}

	var err error
	switch op.kind {
	case models.KindCopy:
		if item.IsDir {
			err = op.fs.CopyDirectoryRecursive(item.Source, dst)
		} else {
			err = op.fs.CopyFile(item.Source, dst)
		}
	case models.KindMove:
		err = op.moveItem(item, dst)
	case models.KindRename:
		err = op.fs.Rename(item.Source, dst)
	}

	if err != nil {
		op.recordFailure(item, err)
	}
}

// moveItem renames when possible and falls back to copy-then-remove for
// cross-device moves
func (op *Operation) moveItem(item *models.OperationItem, dst string) error {
	if err := op.fs.Rename(item.Source, dst); err == nil {
		return nil
	}

	var err error
	if item.IsDir {
		err = op.fs.CopyDirectoryRecursive(item.Source, dst)
	} else {
		err = op.fs.CopyFile(item.Source, dst)
	}
	if err != nil {
		return err
	}

	if item.IsDir {
		return op.fs.RemoveDirectoryRecursive(item.Source)
	}
	return op.fs.RemoveFile(item.Source)
}

// effectiveDestination resolves where the item should land
func (op *Operation) effectiveDestination(item *models.OperationItem) string {
	if op.kind == models.KindRename {
		return item.Destination
	}
	if op.destDir != "" {
		return filepath.Join(op.destDir, filepath.Base(item.Source))
	}
	return item.Destination
}

func (op *Operation) removeExisting(path string) error {
	if op.fs.IsDirectory(path) {
		return op.fs.RemoveDirectoryRecursive(path)
	}
	return op.fs.RemoveFile(path)
}

// recordFailure appends a failed item. Failure is never fatal to the batch;
// the worker moves on to the next item.
func (op *Operation) recordFailure(item *models.OperationItem, err error) {
	op.mu.Lock()
	op.failed = append(op.failed, models.FailedItem{
		Path:    item.Source,
		Message: err.Error(),
	})
	op.mu.Unlock()

	op.log.Error("item failed", err, logging.Fields{
		"operation": op.id,
		"path":      item.Source,
	})
}

// recordSkip appends an intentionally-skipped item. Skips are marked so the
// caller can tell them apart from failures; they never fail the operation.
func (op *Operation) recordSkip(item *models.OperationItem, dst string) {
	op.mu.Lock()
	op.failed = append(op.failed, models.FailedItem{
		Path:    item.Source,
		Message: fmt.Sprintf("destination exists, skipped: %s", dst),
		Skipped: true,
	})
	op.mu.Unlock()

	op.log.Info("item skipped", logging.Fields{
		"operation":   op.id,
		"path":        item.Source,
		"destination": dst,
	})
}

// advance counts the item as processed and publishes a fresh snapshot.
// The callback is invoked without holding the lock so it may call back into
// the operation (e.g. Pause).
func (op *Operation) advance(item *models.OperationItem) {
	op.mu.Lock()

	op.progress.CompletedItems++
	op.progress.CompletedBytes += item.Size
	op.progress.CurrentPath = item.Source
	op.progress.Percentage = percent(op.progress)

	op.speed.observe(op.progress.CompletedBytes, time.Now())
	op.progress.BytesPerSecond = op.speed.throughput()
	op.progress.ETASeconds = 0
	if remaining := op.progress.Remaining(); remaining > 0 && op.progress.BytesPerSecond > 0 {
		op.progress.ETASeconds = remaining / op.progress.BytesPerSecond
	}

	snapshot := op.progress
	cb := op.onProgress
	op.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// percent computes the progress percentage, byte-weighted when totals are
// known and item-count-weighted otherwise
func percent(p models.OperationProgress) float64 {
	if p.TotalBytes > 0 {
		return float64(p.CompletedBytes) / float64(p.TotalBytes) * 100
	}
	if p.TotalItems > 0 {
		return float64(p.CompletedItems) / float64(p.TotalItems) * 100
	}
	return 0
}

// finish resolves the terminal status once, after the loop, and fires the
// completion callback
func (op *Operation) finish() {
	op.mu.Lock()

	failures := 0
	for _, f := range op.failed {
		if !f.Skipped {
			failures++
		}
	}

	var summary string
	switch {
	case op.cancelRequested:
		op.status = models.StatusCancelled
		summary = "operation cancelled"
	case failures > 0:
		op.status = models.StatusFailed
		summary = fmt.Sprintf("%d of %d items failed", failures, len(op.items))
	default:
		op.status = models.StatusCompleted
		op.progress.Percentage = 100
		op.progress.CurrentPath = ""
		op.progress.ETASeconds = 0
	}

	status := op.status
	snapshot := op.progress
	cb := op.onComplete
	op.mu.Unlock()

	op.log.Info("operation finished", logging.Fields{
		"operation": op.id,
		"status":    status,
		"items":     snapshot.CompletedItems,
		"bytes":     snapshot.CompletedBytes,
		"failures":  failures,
	})

	// The callback must return before done is closed: WaitForCompletion is a
	// full join, nothing of the worker may still be running afterwards
	if cb != nil {
		cb(status == models.StatusCompleted, summary)
	}

	close(op.done)
}
