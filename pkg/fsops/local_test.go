package fsops

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createFile(t *testing.T, path string, content []byte, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}

func TestLocalExists(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "present.txt")
	createFile(t, file, []byte("x"), 0644)

	local := NewLocal()

	if !local.Exists(file) {
		t.Error("Exists() = false for an existing file")
	}
	if !local.Exists(tempDir) {
		t.Error("Exists() = false for an existing directory")
	}
	if local.Exists(filepath.Join(tempDir, "absent.txt")) {
		t.Error("Exists() = true for a missing path")
	}
}

func TestLocalIsDirectory(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "file.txt")
	createFile(t, file, []byte("x"), 0644)

	local := NewLocal()

	if !local.IsDirectory(tempDir) {
		t.Error("IsDirectory() = false for a directory")
	}
	if local.IsDirectory(file) {
		t.Error("IsDirectory() = true for a regular file")
	}
	if local.IsDirectory(filepath.Join(tempDir, "absent")) {
		t.Error("IsDirectory() = true for a missing path")
	}
}

func TestLocalFileSize(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "sized.bin")
	createFile(t, file, make([]byte, 1234), 0644)

	local := NewLocal()

	size, err := local.FileSize(file)
	if err != nil {
		t.Fatalf("FileSize() error = %v", err)
	}
	if size != 1234 {
		t.Errorf("FileSize() = %d, want 1234", size)
	}

	if _, err := local.FileSize(filepath.Join(tempDir, "absent")); err == nil {
		t.Error("FileSize() should fail for a missing path")
	}
}

func TestLocalLastWriteTime(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "stamped.txt")
	createFile(t, file, []byte("x"), 0644)

	want := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(file, want, want); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}

	local := NewLocal()

	got, err := local.LastWriteTime(file)
	if err != nil {
		t.Fatalf("LastWriteTime() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("LastWriteTime() = %v, want %v", got, want)
	}

	if _, err := local.LastWriteTime(filepath.Join(tempDir, "absent")); err == nil {
		t.Error("LastWriteTime() should fail for a missing path")
	}
}

func TestLocalCreateDirectories(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b", "c")

	local := NewLocal()

	if err := local.CreateDirectories(nested); err != nil {
		t.Fatalf("CreateDirectories() error = %v", err)
	}
	if !local.IsDirectory(nested) {
		t.Error("nested directory was not created")
	}

	// Creating an existing directory is not an error
	if err := local.CreateDirectories(nested); err != nil {
		t.Errorf("CreateDirectories() on existing path error = %v", err)
	}
}

func TestLocalCopyFile(t *testing.T) {
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "src.txt")
	dst := filepath.Join(tempDir, "dst.txt")
	content := []byte("the quick brown fox")
	createFile(t, src, content, 0640)

	srcTime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, srcTime, srcTime); err != nil {
		t.Fatalf("failed to set source mtime: %v", err)
	}

	local := NewLocal()

	if err := local.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("destination content = %q, want %q", got, content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("failed to stat destination: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("destination mode = %v, want 0640", info.Mode().Perm())
	}
	if !info.ModTime().Equal(srcTime) {
		t.Errorf("destination mtime = %v, want %v", info.ModTime(), srcTime)
	}
}

func TestLocalCopyFileMissingSource(t *testing.T) {
	tempDir := t.TempDir()

	local := NewLocal()

	err := local.CopyFile(filepath.Join(tempDir, "absent"), filepath.Join(tempDir, "dst"))
	if err == nil {
		t.Fatal("CopyFile() should fail for a missing source")
	}
	if local.Exists(filepath.Join(tempDir, "dst")) {
		t.Error("no destination should be left behind on failure")
	}
}

func TestLocalCopyDirectoryRecursive(t *testing.T) {
	tempDir := t.TempDir()

	srcRoot := filepath.Join(tempDir, "src")
	createFile(t, filepath.Join(srcRoot, "top.txt"), []byte("top"), 0644)
	createFile(t, filepath.Join(srcRoot, "sub", "nested.txt"), []byte("nested"), 0644)
	createFile(t, filepath.Join(srcRoot, "sub", "deep", "leaf.txt"), []byte("leaf"), 0644)

	dstRoot := filepath.Join(tempDir, "dst")

	local := NewLocal()

	if err := local.CopyDirectoryRecursive(srcRoot, dstRoot); err != nil {
		t.Fatalf("CopyDirectoryRecursive() error = %v", err)
	}

	for rel, want := range map[string]string{
		"top.txt":           "top",
		"sub/nested.txt":    "nested",
		"sub/deep/leaf.txt": "leaf",
	} {
		got, err := os.ReadFile(filepath.Join(dstRoot, filepath.FromSlash(rel)))
		if err != nil {
			t.Errorf("copied file %s missing: %v", rel, err)
			continue
		}
		if string(got) != want {
			t.Errorf("copied file %s = %q, want %q", rel, got, want)
		}
	}
}

func TestLocalRename(t *testing.T) {
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "before.txt")
	dst := filepath.Join(tempDir, "after.txt")
	createFile(t, src, []byte("data"), 0644)

	local := NewLocal()

	if err := local.Rename(src, dst); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if local.Exists(src) {
		t.Error("source still exists after rename")
	}
	if !local.Exists(dst) {
		t.Error("destination missing after rename")
	}

	if err := local.Rename(filepath.Join(tempDir, "absent"), dst); err == nil {
		t.Error("Rename() should fail for a missing source")
	}
}

func TestLocalRemove(t *testing.T) {
	tempDir := t.TempDir()

	file := filepath.Join(tempDir, "file.txt")
	dir := filepath.Join(tempDir, "dir")
	createFile(t, file, []byte("x"), 0644)
	createFile(t, filepath.Join(dir, "inner", "leaf.txt"), []byte("x"), 0644)

	local := NewLocal()

	if err := local.RemoveFile(file); err != nil {
		t.Fatalf("RemoveFile() error = %v", err)
	}
	if local.Exists(file) {
		t.Error("file still exists after RemoveFile()")
	}
	if err := local.RemoveFile(file); err == nil {
		t.Error("RemoveFile() should fail for a missing path")
	}

	if err := local.RemoveDirectoryRecursive(dir); err != nil {
		t.Fatalf("RemoveDirectoryRecursive() error = %v", err)
	}
	if local.Exists(dir) {
		t.Error("directory still exists after RemoveDirectoryRecursive()")
	}
}

func TestLocalWithLimitThrottles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping throughput test in short mode")
	}

	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src.bin")
	dst := filepath.Join(tempDir, "dst.bin")

	// The limiter's bucket starts full with a 64 KiB floor, so the payload
	// must exceed that initial burst for throttling to bite: 192 KiB at
	// 256 KiB/s leaves 128 KiB to pay for, roughly half a second
	const payloadSize = 192 * 1024
	createFile(t, src, make([]byte, payloadSize), 0644)

	local := NewLocalWithLimit(256*1024, 32*1024)

	start := time.Now()
	if err := local.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 200*time.Millisecond {
		t.Errorf("copy finished in %v, expected rate limiting to slow it down", elapsed)
	}

	got, _ := os.ReadFile(dst)
	if len(got) != payloadSize {
		t.Errorf("destination size = %d, want %d", len(got), payloadSize)
	}
}
