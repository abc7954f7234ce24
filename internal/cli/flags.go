package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdubois/filebatch/pkg/config"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/filebatch/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// BatchFlags holds flags shared by the copy/move/delete/rename commands
type BatchFlags struct {
	Dest          string
	Conflict      string
	Output        string
	MaxConcurrent int
	Bandwidth     int64
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// addBatchFlags registers the shared flags on a batch command
func addBatchFlags(cmd *cobra.Command, flags *BatchFlags, withDest bool) {
	if withDest {
		cmd.Flags().StringVarP(&flags.Dest, "dest", "d", "", "destination directory (required)")
		cmd.MarkFlagRequired("dest")
	}

	cmd.Flags().StringVar(&flags.Conflict, "conflict", "",
		"conflict resolution: ask, skip, overwrite, overwrite-older, rename, keep-both")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().IntVar(&flags.MaxConcurrent, "max-concurrent", 0, "maximum concurrently running operations")
	cmd.Flags().Int64Var(&flags.Bandwidth, "bandwidth", 0, "bandwidth limit in bytes per second (0 = unlimited)")

	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig loads the configuration honoring the --config flag
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyBatchFlags overrides config values with explicitly set flags
func applyBatchFlags(cfg *config.Config, flags *BatchFlags) {
	if flags.Conflict != "" {
		cfg.Queue.ConflictResolution = parseResolution(flags.Conflict)
	}
	if flags.Output != "" {
		cfg.Output.Format = flags.Output
	}
	if flags.MaxConcurrent > 0 {
		cfg.Queue.MaxConcurrent = flags.MaxConcurrent
	}
	if flags.Bandwidth > 0 {
		cfg.Transfer.BandwidthLimit = flags.Bandwidth
	}
	if flags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = flags.LogFile
	}
	if flags.LogFormat != "" {
		cfg.Logging.Format = flags.LogFormat
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if globalFlags.Quiet {
		cfg.Output.Progress = false
	}
}
