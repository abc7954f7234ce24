package fsops

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mdubois/filebatch/pkg/ratelimit"
)

const defaultBufferSize = 64 * 1024

// Local is the OS filesystem implementation of Filesystem
type Local struct {
	limiter    *ratelimit.Limiter
	bufferSize int
}

// NewLocal creates a local filesystem with unlimited transfer rate
func NewLocal() *Local {
	return &Local{bufferSize: defaultBufferSize}
}

// NewLocalWithLimit creates a local filesystem whose copies are throttled to
// bytesPerSecond (0 = unlimited)
func NewLocalWithLimit(bytesPerSecond int64, bufferSize int) *Local {
	if bufferSize < 1024 {
		bufferSize = defaultBufferSize
	}
	return &Local{
		limiter:    ratelimit.NewLimiter(bytesPerSecond),
		bufferSize: bufferSize,
	}
}

// Exists reports whether path exists
func (l *Local) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDirectory reports whether path exists and is a directory
func (l *Local) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileSize returns the size of the file at path
func (l *Local) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size(), nil
}

// LastWriteTime returns the modification time of path
func (l *Local) LastWriteTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.ModTime(), nil
}

// CreateDirectories creates path and all missing parents
func (l *Local) CreateDirectories(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// CopyFile copies a single file, preserving permissions and modification time
func (l *Local) CopyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	reader := ratelimit.NewReader(in, l.limiter)
	buf := make([]byte, l.bufferSize)

	written, err := io.CopyBuffer(out, reader, buf)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if written != srcInfo.Size() {
		os.Remove(dst)
		return fmt.Errorf("incomplete copy: expected %d bytes, wrote %d", srcInfo.Size(), written)
	}

	// Preserve timestamps; failure here is not worth failing the copy for
	os.Chtimes(dst, time.Now(), srcInfo.ModTime())

	return nil
}

// CopyDirectoryRecursive copies the tree rooted at src to dst
func (l *Local) CopyDirectoryRecursive(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			return nil
		}

		return l.CopyFile(path, target)
	})
}

// Rename moves src to dst
func (l *Local) Rename(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

// RemoveFile removes a single file
func (l *Local) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// RemoveDirectoryRecursive removes the tree rooted at path
func (l *Local) RemoveDirectoryRecursive(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}
	return nil
}
