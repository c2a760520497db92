package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/spectra-health/spectra/internal/analytics"
)

// csvFormatter writes one row per event name and per clicked button
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(s *analytics.Summary) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write([]string{"Kind", "Name", "Count"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, c := range s.Sorted() {
		if err := writer.Write([]string{"event", c.Name, fmt.Sprintf("%d", c.Count)}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	for _, c := range s.SortedButtons() {
		if err := writer.Write([]string{"button", c.Name, fmt.Sprintf("%d", c.Count)}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.Bytes(), nil
}
