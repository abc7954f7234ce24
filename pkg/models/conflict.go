package models

import (
	"time"
)

// ConflictResolution defines how a destination collision is handled
type ConflictResolution string

const (
	// ResolutionAsk defers the decision to a registered resolver. It is a
	// default-policy sentinel only; a concrete resolver must never return it.
	ResolutionAsk ConflictResolution = "ask"
	// ResolutionSkip leaves the destination untouched and skips the item
	ResolutionSkip ConflictResolution = "skip"
	// ResolutionOverwrite replaces the destination with the source
	ResolutionOverwrite ConflictResolution = "overwrite"
	// ResolutionOverwriteOlder overwrites only when the source is strictly
	// newer than the destination, otherwise skips
	ResolutionOverwriteOlder ConflictResolution = "overwrite-older"
	// ResolutionRename places the source under a generated unique name
	ResolutionRename ConflictResolution = "rename"
	// ResolutionKeepBoth keeps the destination and places the source under a
	// generated unique name
	ResolutionKeepBoth ConflictResolution = "keep-both"
)

// Valid reports whether the resolution is one of the known variants
func (r ConflictResolution) Valid() bool {
	switch r {
	case ResolutionAsk, ResolutionSkip, ResolutionOverwrite,
		ResolutionOverwriteOlder, ResolutionRename, ResolutionKeepBoth:
		return true
	}
	return false
}

// FileConflict describes a destination collision at the moment it is found.
// It is built on demand and passed synchronously to the resolver; it is
// never persisted.
type FileConflict struct {
	// SourcePath is the path being placed
	SourcePath string

	// DestPath is the existing path it collides with
	DestPath string

	// SourceSize and DestSize are the byte sizes of both sides
	// (zero for directories)
	SourceSize int64
	DestSize   int64

	// SourceModTime and DestModTime are the modification times of both sides
	SourceModTime time.Time
	DestModTime   time.Time

	// DestIsDir indicates the existing destination is a directory
	DestIsDir bool
}

// ConflictResolver decides how to handle a collision. It is called at most
// once per conflicting item, synchronously, from the operation's worker.
// Implementations must return a concrete decision, not ResolutionAsk.
type ConflictResolver func(FileConflict) ConflictResolution
