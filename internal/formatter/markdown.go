package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/spectra-health/spectra/internal/analytics"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(s *analytics.Summary) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Landing Analytics Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05")))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Events | %s |\n", formatNumber(s.Total)))
	b.WriteString(fmt.Sprintf("| Sessions | %s |\n", formatNumber(s.Sessions)))
	b.WriteString(fmt.Sprintf("| Invalid lines | %s |\n", formatNumber(s.Invalid)))
	if !s.First.IsZero() {
		b.WriteString(fmt.Sprintf("| Window | %s to %s |\n",
			s.First.UTC().Format(time.RFC3339), s.Last.UTC().Format(time.RFC3339)))
	}
	b.WriteString("\n")

	if counts := s.Sorted(); len(counts) > 0 {
		writeCountSection(&b, "Events", "Event", counts)
	}
	if buttons := s.SortedButtons(); len(buttons) > 0 {
		writeCountSection(&b, "Buttons", "Button", buttons)
	}

	return []byte(b.String()), nil
}

func writeCountSection(b *strings.Builder, title, label string, counts []analytics.EventCount) {
	b.WriteString(fmt.Sprintf("## %s\n\n", title))
	b.WriteString(fmt.Sprintf("| %s | Count |\n", label))
	b.WriteString("|------|-------|\n")
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("| `%s` | %s |\n", c.Name, formatNumber(c.Count)))
	}
	b.WriteString("\n")
}

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}
