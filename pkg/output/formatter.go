package output

import (
	"fmt"

	"github.com/mdubois/filebatch/pkg/models"
)

// Formatter renders operation progress and the final report.
// Implementations include a progress-bar renderer, a plain human renderer,
// and a JSON renderer.
type Formatter interface {
	// Start is called once before the operation begins processing items
	Start(description string, progress models.OperationProgress)

	// Update is called with each progress snapshot, from the operation's
	// worker goroutine
	Update(progress models.OperationProgress)

	// Complete is called once with the final report
	Complete(report *models.BatchReport) error
}

// formatBytes renders a byte count in human units
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
