package config

import (
	"github.com/mdubois/filebatch/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Queue    QueueConfig    `yaml:"queue"`
	Transfer TransferConfig `yaml:"transfer"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// QueueConfig holds scheduler settings
type QueueConfig struct {
	// MaxConcurrent bounds how many operations run at once
	MaxConcurrent int `yaml:"max_concurrent"`

	// ConflictResolution is the default policy for destination collisions
	ConflictResolution models.ConflictResolution `yaml:"conflict_resolution"`
}

// TransferConfig holds file transfer settings
type TransferConfig struct {
	// BufferSize is the copy buffer size in bytes
	BufferSize int `yaml:"buffer_size"`

	// BandwidthLimit throttles copies, in bytes per second (0 = unlimited)
	BandwidthLimit int64 `yaml:"bandwidth_limit"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Queue: QueueConfig{
			MaxConcurrent:      2,
			ConflictResolution: models.ResolutionAsk,
		},
		Transfer: TransferConfig{
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Queue.MaxConcurrent < 1 {
		return &models.ValidationError{
			Field:   "queue.max_concurrent",
			Message: "must be at least 1",
		}
	}

	if !c.Queue.ConflictResolution.Valid() {
		return &models.ValidationError{
			Field:   "queue.conflict_resolution",
			Message: "must be 'ask', 'skip', 'overwrite', 'overwrite-older', 'rename' or 'keep-both'",
		}
	}

	if c.Transfer.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "transfer.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Transfer.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "transfer.bandwidth_limit",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
