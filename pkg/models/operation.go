package models

// OperationKind defines the kind of file action a batch performs
type OperationKind string

const (
	// KindCopy copies each item to the destination
	KindCopy OperationKind = "copy"
	// KindMove moves each item to the destination
	KindMove OperationKind = "move"
	// KindDelete removes each item
	KindDelete OperationKind = "delete"
	// KindRename renames each item to its explicit destination
	KindRename OperationKind = "rename"
)

// Valid reports whether the kind is one of the known variants
func (k OperationKind) Valid() bool {
	switch k {
	case KindCopy, KindMove, KindDelete, KindRename:
		return true
	}
	return false
}

// Verb returns the present-participle form used in descriptions
func (k OperationKind) Verb() string {
	switch k {
	case KindCopy:
		return "Copying"
	case KindMove:
		return "Moving"
	case KindDelete:
		return "Deleting"
	case KindRename:
		return "Renaming"
	}
	return "Processing"
}

// OperationStatus represents the lifecycle state of an operation
type OperationStatus string

const (
	// StatusPending indicates the operation has not been started
	StatusPending OperationStatus = "pending"
	// StatusInProgress indicates the worker is processing items
	StatusInProgress OperationStatus = "in-progress"
	// StatusPaused indicates the worker is blocked waiting for a resume
	StatusPaused OperationStatus = "paused"
	// StatusCompleted indicates all items were processed without failure
	StatusCompleted OperationStatus = "completed"
	// StatusFailed indicates at least one item failed
	StatusFailed OperationStatus = "failed"
	// StatusCancelled indicates the operation was cancelled before finishing
	StatusCancelled OperationStatus = "cancelled"
)

// IsTerminal reports whether the status is final (no further transitions)
func (s OperationStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// OperationItem is one unit of work within an operation
type OperationItem struct {
	// Source is the path the action reads from
	Source string

	// Destination is the explicit target path. Meaningful for rename;
	// for copy and move it is derived from the operation-level destination
	// directory when one is set.
	Destination string

	// Size in bytes, used for progress weighting only
	Size int64

	// IsDir indicates the source is a directory
	IsDir bool
}

// FailedItem records an item that could not be placed, or was skipped
type FailedItem struct {
	// Path is the source path of the item
	Path string

	// Message holds the underlying error text, verbatim
	Message string

	// Skipped marks an intentional skip (conflict policy) rather than a
	// failure. Skipped items never make the operation fail overall.
	Skipped bool
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
