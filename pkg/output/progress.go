package output

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/mdubois/filebatch/pkg/models"
)

// ProgressFormatter renders a live progress bar for a running operation.
// Byte totals drive the bar when known; otherwise it falls back to item
// counts.
type ProgressFormatter struct {
	writer    io.Writer
	bar       *pb.ProgressBar
	byteBased bool
}

// NewProgressFormatter creates a progress-bar formatter writing to stdout
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{writer: os.Stdout}
}

// NewProgressFormatterWriter creates a progress-bar formatter with a custom
// writer
func NewProgressFormatterWriter(w io.Writer) *ProgressFormatter {
	return &ProgressFormatter{writer: w}
}

// Start initializes the bar
func (f *ProgressFormatter) Start(description string, progress models.OperationProgress) {
	fmt.Fprintln(f.writer, description)

	total := progress.TotalBytes
	f.byteBased = total > 0
	if !f.byteBased {
		total = int64(progress.TotalItems)
	}
	if total == 0 {
		total = 1
	}

	f.bar = pb.New64(total)
	f.bar.SetWriter(f.writer)
	f.bar.Set(pb.Bytes, f.byteBased)
	f.bar.Start()
}

// Update advances the bar to the snapshot's position
func (f *ProgressFormatter) Update(progress models.OperationProgress) {
	if f.bar == nil {
		return
	}

	if f.byteBased {
		f.bar.SetCurrent(progress.CompletedBytes)
	} else {
		f.bar.SetCurrent(int64(progress.CompletedItems))
	}
}

// Complete finishes the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.BatchReport) error {
	if f.bar != nil {
		if report.Status == models.StatusCompleted {
			f.bar.SetCurrent(f.bar.Total())
		}
		f.bar.Finish()
	}

	writeSummary(f.writer, report)
	return nil
}
