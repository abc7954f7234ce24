package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path; empty writes to stderr
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
}

// FileLogger implements Logger with file or stderr output
type FileLogger struct {
	config FileLoggerConfig
	file   *os.File
	writer io.Writer
	fields Fields

	mu *sync.Mutex
}

// NewFileLogger creates a new file logger. With an empty path it logs
// to stderr.
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	logger := &FileLogger{
		config: config,
		writer: os.Stderr,
		mu:     &sync.Mutex{},
	}

	if config.Path != "" {
		dir := filepath.Dir(config.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		logger.file = file
		logger.writer = file
	}

	return logger, nil
}

// Debug logs a debug message
func (l *FileLogger) Debug(msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger that adds fields to every entry
func (l *FileLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &FileLogger{
		config: l.config,
		file:   l.file,
		writer: l.writer,
		fields: merged,
		mu:     l.mu,
	}
}

// Close flushes and closes the log file
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.config.Level {
		return
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.config.Format {
	case FormatJSON:
		entry := map[string]interface{}{
			"time":    time.Now().Format(time.RFC3339),
			"level":   level.String(),
			"message": msg,
		}
		for k, v := range merged {
			entry[k] = v
		}
		data, marshalErr := json.Marshal(entry)
		if marshalErr != nil {
			return
		}
		fmt.Fprintln(l.writer, string(data))

	default:
		var sb strings.Builder
		sb.WriteString(time.Now().Format(time.RFC3339))
		sb.WriteString(" [")
		sb.WriteString(strings.ToUpper(level.String()))
		sb.WriteString("] ")
		sb.WriteString(msg)

		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf(" %s=%v", k, merged[k]))
		}
		fmt.Fprintln(l.writer, sb.String())
	}
}
