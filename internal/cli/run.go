package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdubois/filebatch/internal/platform"
	"github.com/mdubois/filebatch/pkg/batch"
	"github.com/mdubois/filebatch/pkg/config"
	"github.com/mdubois/filebatch/pkg/fsops"
	"github.com/mdubois/filebatch/pkg/logging"
	"github.com/mdubois/filebatch/pkg/models"
	"github.com/mdubois/filebatch/pkg/output"
)

// parseResolution converts a flag value to a conflict resolution, falling
// back to ask for unknown values
func parseResolution(value string) models.ConflictResolution {
	resolution := models.ConflictResolution(value)
	if !resolution.Valid() {
		return models.ResolutionAsk
	}
	return resolution
}

// buildItems turns positional source arguments into operation items
func buildItems(sources []string) ([]models.OperationItem, error) {
	items := make([]models.OperationItem, 0, len(sources))

	for _, source := range sources {
		normalized := platform.NormalizePath(source)
		if err := platform.ValidatePath(normalized); err != nil {
			return nil, err
		}

		info, err := os.Stat(normalized)
		if err != nil {
			return nil, fmt.Errorf("source path does not exist: %s", normalized)
		}

		item := models.OperationItem{
			Source: normalized,
			IsDir:  info.IsDir(),
		}
		if !info.IsDir() {
			item.Size = info.Size()
		}
		items = append(items, item)
	}

	return items, nil
}

// newLogger builds the logger from config
func newLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.Logging.File,
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}

// newFormatter builds the output formatter from config
func newFormatter(cfg *config.Config) output.Formatter {
	if cfg.Output.Format == "json" {
		return output.NewJSONFormatter(os.Stdout)
	}
	if cfg.Output.Progress {
		return output.NewProgressFormatter()
	}
	return output.NewHumanFormatter(os.Stdout)
}

// promptResolver asks the user on stdin how to handle each collision
func promptResolver(in *os.File) models.ConflictResolver {
	reader := bufio.NewReader(in)

	return func(conflict models.FileConflict) models.ConflictResolution {
		fmt.Printf("Destination exists: %s\n", conflict.DestPath)
		if !conflict.DestIsDir {
			fmt.Printf("  existing: %d bytes, modified %s\n",
				conflict.DestSize, conflict.DestModTime.Format(time.RFC3339))
			fmt.Printf("  incoming: %d bytes, modified %s\n",
				conflict.SourceSize, conflict.SourceModTime.Format(time.RFC3339))
		}
		fmt.Print("[s]kip, [o]verwrite, [n]ewer wins, [r]ename, [k]eep both? ")

		answer, err := reader.ReadString('\n')
		if err != nil {
			return models.ResolutionSkip
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "o":
			return models.ResolutionOverwrite
		case "n":
			return models.ResolutionOverwriteOlder
		case "r":
			return models.ResolutionRename
		case "k":
			return models.ResolutionKeepBoth
		default:
			return models.ResolutionSkip
		}
	}
}

// runBatch is the shared execution path of the copy/move/delete/rename
// commands: build the operation, queue it, drive the scheduler, render
// progress, and print the final report.
func runBatch(kind models.OperationKind, sources []string, flags *BatchFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBatchFlags(cfg, flags)

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	items, err := buildItems(sources)
	if err != nil {
		return err
	}

	fs := fsops.NewLocalWithLimit(cfg.Transfer.BandwidthLimit, cfg.Transfer.BufferSize)

	op := batch.NewOperation(kind, fs, logger)
	if err := op.AddItems(items); err != nil {
		return err
	}
	if flags.Dest != "" {
		if err := op.SetDestination(platform.NormalizePath(flags.Dest)); err != nil {
			return err
		}
	}

	return executeOperation(op, cfg, logger)
}

// executeOperation wires the conflict policy and formatter, queues the
// operation, waits for it, and prints the report. The process exit code
// follows the terminal status.
func executeOperation(op *batch.Operation, cfg *config.Config, logger logging.Logger) error {
	if err := op.SetConflictResolution(cfg.Queue.ConflictResolution); err != nil {
		return err
	}
	if cfg.Queue.ConflictResolution == models.ResolutionAsk {
		if err := op.SetConflictResolver(promptResolver(os.Stdin)); err != nil {
			return err
		}
	}

	formatter := newFormatter(cfg)
	if err := op.OnProgress(formatter.Update); err != nil {
		return err
	}

	queue := batch.NewScheduler(cfg.Queue.MaxConcurrent, logger)
	queue.Add(op)

	startTime := time.Now()
	formatter.Start(op.GetDescription(), op.GetProgress())

	queue.ProcessQueue()
	op.WaitForCompletion()

	report := &models.BatchReport{
		ID:          uuid.New().String(),
		Kind:        op.Kind(),
		Destination: op.GetDestination(),
		StartTime:   startTime,
		EndTime:     time.Now(),
		Duration:    time.Since(startTime),
		Status:      op.GetStatus(),
		Progress:    op.GetProgress(),
		FailedItems: op.GetFailedItems(),
	}

	if err := formatter.Complete(report); err != nil {
		return err
	}

	if code := report.Status.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}
