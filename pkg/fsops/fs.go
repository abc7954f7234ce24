package fsops

import (
	"time"
)

// Filesystem defines the blocking filesystem calls the batch engine consumes.
// Implementations include the local OS filesystem; tests substitute fakes to
// inject failures.
type Filesystem interface {
	// Exists reports whether a file or directory exists at path
	Exists(path string) bool

	// IsDirectory reports whether path exists and is a directory
	IsDirectory(path string) bool

	// FileSize returns the size of the file at path in bytes
	FileSize(path string) (int64, error)

	// LastWriteTime returns the modification time of path
	LastWriteTime(path string) (time.Time, error)

	// CreateDirectories creates the directory at path and all parents
	CreateDirectories(path string) error

	// CopyFile copies a single file from src to dst, preserving
	// modification time and permissions
	CopyFile(src, dst string) error

	// CopyDirectoryRecursive copies the directory tree rooted at src to dst
	CopyDirectoryRecursive(src, dst string) error

	// Rename moves src to dst
	Rename(src, dst string) error

	// RemoveFile removes a single file
	RemoveFile(path string) error

	// RemoveDirectoryRecursive removes the directory tree rooted at path
	RemoveDirectoryRecursive(path string) error
}
