package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdubois/filebatch/pkg/models"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default configuration should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "Valid",
			mutate: func(*Config) {},
		},
		{
			name:      "MaxConcurrentTooLow",
			mutate:    func(c *Config) { c.Queue.MaxConcurrent = 0 },
			wantField: "queue.max_concurrent",
		},
		{
			name:      "UnknownConflictResolution",
			mutate:    func(c *Config) { c.Queue.ConflictResolution = "merge" },
			wantField: "queue.conflict_resolution",
		},
		{
			name:      "BufferTooSmall",
			mutate:    func(c *Config) { c.Transfer.BufferSize = 512 },
			wantField: "transfer.buffer_size",
		},
		{
			name:      "NegativeBandwidth",
			mutate:    func(c *Config) { c.Transfer.BandwidthLimit = -1 },
			wantField: "transfer.bandwidth_limit",
		},
		{
			name:      "UnknownOutputFormat",
			mutate:    func(c *Config) { c.Output.Format = "xml" },
			wantField: "output.format",
		},
		{
			name:      "UnknownLogFormat",
			mutate:    func(c *Config) { c.Logging.Format = "logfmt" },
			wantField: "logging.format",
		},
		{
			name:      "UnknownLogLevel",
			mutate:    func(c *Config) { c.Logging.Level = "trace" },
			wantField: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() error = nil, want validation error")
			}
			verr, ok := err.(*models.ValidationError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *models.ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Queue.MaxConcurrent = 4
	cfg.Queue.ConflictResolution = models.ResolutionOverwriteOlder
	cfg.Transfer.BandwidthLimit = 1 << 20
	cfg.Output.Format = "json"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if loaded.Queue.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", loaded.Queue.MaxConcurrent)
	}
	if loaded.Queue.ConflictResolution != models.ResolutionOverwriteOlder {
		t.Errorf("ConflictResolution = %q, want overwrite-older", loaded.Queue.ConflictResolution)
	}
	if loaded.Transfer.BandwidthLimit != 1<<20 {
		t.Errorf("BandwidthLimit = %d, want %d", loaded.Transfer.BandwidthLimit, 1<<20)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", loaded.Output.Format)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "queue:\n  max_concurrent: 8\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Queue.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent = %d, want 8", cfg.Queue.MaxConcurrent)
	}
	// Unspecified sections keep their defaults
	if cfg.Transfer.BufferSize != 65536 {
		t.Errorf("BufferSize = %d, want default 65536", cfg.Transfer.BufferSize)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %q, want default human", cfg.Output.Format)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Queue.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want default 2", cfg.Queue.MaxConcurrent)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(tempDir, "absent.yaml")); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(tempDir, "broken.yaml")
		os.WriteFile(path, []byte("queue: [not a mapping"), 0644)

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := filepath.Join(tempDir, "typo.yaml")
		os.WriteFile(path, []byte("queue:\n  max_parallel: 3\n"), 0644)

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should reject unknown keys")
		}
	})

	t.Run("FailsValidation", func(t *testing.T) {
		path := filepath.Join(tempDir, "invalid.yaml")
		os.WriteFile(path, []byte("queue:\n  max_concurrent: -1\n"), 0644)

		_, err := LoadFromFile(path)
		if err == nil {
			t.Fatal("LoadFromFile() should reject invalid values")
		}
		if !strings.Contains(err.Error(), "queue.max_concurrent") {
			t.Errorf("error %q should name the offending field", err)
		}
	})
}
