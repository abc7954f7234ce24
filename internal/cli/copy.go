package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdubois/filebatch/pkg/models"
)

var copyFlags BatchFlags

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy SOURCE... -d DEST",
		Short: "Copy files and directories",
		Long: `Copy the given files and directories into the destination directory.
Each source is one item of the batch; a failing item does not stop the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(models.KindCopy, args, &copyFlags)
		},
	}

	addBatchFlags(cmd, &copyFlags, true)
	return cmd
}
