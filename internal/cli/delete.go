package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdubois/filebatch/pkg/models"
)

var deleteFlags BatchFlags

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete SOURCE...",
		Short: "Delete files and directories",
		Long:  `Delete the given files and directories. Directories are removed recursively.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(models.KindDelete, args, &deleteFlags)
		},
	}

	addBatchFlags(cmd, &deleteFlags, false)
	return cmd
}
