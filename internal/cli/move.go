package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdubois/filebatch/pkg/models"
)

var moveFlags BatchFlags

// NewMoveCommand creates the move command
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move SOURCE... -d DEST",
		Short: "Move files and directories",
		Long: `Move the given files and directories into the destination directory.
Falls back to copy-then-remove when a plain rename is not possible.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(models.KindMove, args, &moveFlags)
		},
	}

	addBatchFlags(cmd, &moveFlags, true)
	return cmd
}
