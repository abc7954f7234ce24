package platform

import (
	"runtime"
	"strings"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("separator expectations differ on windows")
	}

	tests := []struct {
		path string
		want string
	}{
		{"/data//files/", "/data/files"},
		{"/data/./files", "/data/files"},
		{"/data/files/../other", "/data/other"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("/data/files"); err != nil {
		t.Errorf("ValidatePath() error = %v for a valid path", err)
	}

	err := ValidatePath("")
	if err == nil {
		t.Fatal("ValidatePath(\"\") should fail")
	}
	if !strings.Contains(err.Error(), "path is empty") {
		t.Errorf("error = %q, want mention of empty path", err)
	}
}

func TestIsUNCPath(t *testing.T) {
	if runtime.GOOS != "windows" {
		if IsUNCPath("\\\\server\\share") {
			t.Error("IsUNCPath() should always be false off windows")
		}
		return
	}

	if !IsUNCPath("\\\\server\\share") {
		t.Error("IsUNCPath() = false for a UNC path")
	}
	if IsUNCPath("C:\\data") {
		t.Error("IsUNCPath() = true for a drive path")
	}
}

func TestPathError(t *testing.T) {
	err := &PathError{Path: "/bad", Message: "nope"}
	want := "invalid path '/bad': nope"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
