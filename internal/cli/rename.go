package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubois/filebatch/internal/platform"
	"github.com/mdubois/filebatch/pkg/batch"
	"github.com/mdubois/filebatch/pkg/fsops"
	"github.com/mdubois/filebatch/pkg/models"
)

var renameFlags BatchFlags

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename SOURCE TARGET [SOURCE TARGET]...",
		Short: "Rename files and directories",
		Long: `Rename each SOURCE to the following TARGET path.
Arguments are consumed in pairs; every pair is one item of the batch.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args)%2 != 0 {
				return fmt.Errorf("rename requires an even number of arguments (source/target pairs)")
			}
			return nil
		},
		RunE: runRename,
	}

	addBatchFlags(cmd, &renameFlags, false)
	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBatchFlags(cfg, &renameFlags)

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	fs := fsops.NewLocalWithLimit(cfg.Transfer.BandwidthLimit, cfg.Transfer.BufferSize)
	op := batch.NewOperation(models.KindRename, fs, logger)

	for i := 0; i < len(args); i += 2 {
		source := platform.NormalizePath(args[i])
		target := platform.NormalizePath(args[i+1])
		if err := platform.ValidatePath(target); err != nil {
			return err
		}

		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("source path does not exist: %s", source)
		}

		item := models.OperationItem{
			Source:      source,
			Destination: target,
			IsDir:       info.IsDir(),
		}
		if !info.IsDir() {
			item.Size = info.Size()
		}
		if err := op.AddItem(item); err != nil {
			return err
		}
	}

	return executeOperation(op, cfg, logger)
}
