package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spectra-health/spectra/internal/analytics"
)

type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// SummaryJSON is the JSON shape of a summary
type SummaryJSON struct {
	Total    int            `json:"total"`
	Sessions int            `json:"sessions"`
	Invalid  int            `json:"invalid"`
	First    *time.Time     `json:"first,omitempty"`
	Last     *time.Time     `json:"last,omitempty"`
	Events   map[string]int `json:"events"`
	Buttons  map[string]int `json:"buttons"`
}

func (f *jsonFormatter) Format(s *analytics.Summary) ([]byte, error) {
	body := SummaryJSON{
		Total:    s.Total,
		Sessions: s.Sessions,
		Invalid:  s.Invalid,
		Events:   s.Counts,
		Buttons:  s.Buttons,
	}
	if !s.First.IsZero() {
		first, last := s.First, s.Last
		body.First = &first
		body.Last = &last
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	return append(data, '\n'), nil
}
