// Package formatter renders analytics summaries for export.
package formatter

import (
	"fmt"

	"github.com/spectra-health/spectra/internal/analytics"
)

// Formatter defines the interface for summary output formatting
type Formatter interface {
	Format(summary *analytics.Summary) ([]byte, error)
}

// New returns the formatter for a format name
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return NewJSON(), nil
	case "csv":
		return NewCSV(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use table, json, csv or markdown)", format)
	}
}
