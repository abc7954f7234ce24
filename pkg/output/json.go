package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mdubois/filebatch/pkg/models"
)

// JSONFormatter emits the final report as a single JSON document.
// Progress updates are not streamed.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Start does nothing
func (f *JSONFormatter) Start(description string, progress models.OperationProgress) {}

// Update does nothing
func (f *JSONFormatter) Update(progress models.OperationProgress) {}

// Complete writes the report as indented JSON
func (f *JSONFormatter) Complete(report *models.BatchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	fmt.Fprintln(f.writer, string(data))
	return nil
}
