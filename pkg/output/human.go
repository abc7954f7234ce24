package output

import (
	"fmt"
	"io"
	"time"

	"github.com/mdubois/filebatch/pkg/models"
)

// HumanFormatter renders plain text without a live progress bar.
// Suitable for piped or redirected output.
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a plain-text formatter
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	return &HumanFormatter{writer: w}
}

// Start prints the operation description
func (f *HumanFormatter) Start(description string, progress models.OperationProgress) {
	fmt.Fprintln(f.writer, description)
}

// Update does nothing; per-item progress is not rendered in plain mode
func (f *HumanFormatter) Update(progress models.OperationProgress) {}

// Complete prints the summary
func (f *HumanFormatter) Complete(report *models.BatchReport) error {
	writeSummary(f.writer, report)
	return nil
}

// writeSummary renders the final report shared by the human and progress
// formatters
func writeSummary(w io.Writer, report *models.BatchReport) {
	fmt.Fprintf(w, "\nFinished in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Status: %s\n", report.Status)
	fmt.Fprintf(w, "Items:  %d/%d processed", report.Progress.CompletedItems, report.Progress.TotalItems)

	if skipped := report.SkippedCount(); skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", skipped)
	}
	if failed := report.FailedCount(); failed > 0 {
		fmt.Fprintf(w, ", %d failed", failed)
	}
	fmt.Fprintln(w)

	if report.Progress.TotalBytes > 0 {
		fmt.Fprintf(w, "Data:   %s of %s\n",
			formatBytes(report.Progress.CompletedBytes),
			formatBytes(report.Progress.TotalBytes))
	}

	for _, item := range report.FailedItems {
		if item.Skipped {
			fmt.Fprintf(w, "  skipped: %s (%s)\n", item.Path, item.Message)
		} else {
			fmt.Fprintf(w, "  failed:  %s: %s\n", item.Path, item.Message)
		}
	}
}
