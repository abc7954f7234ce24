package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubois/filebatch/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "filebatch",
		Short: "Batch file-operation tool",
		Long: `filebatch executes batches of copy, move, delete and rename operations
as cancellable, progress-tracked jobs with configurable conflict handling.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewCopyCommand())
	rootCmd.AddCommand(cli.NewMoveCommand())
	rootCmd.AddCommand(cli.NewDeleteCommand())
	rootCmd.AddCommand(cli.NewRenameCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
