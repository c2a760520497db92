package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spectra-health/spectra/internal/analytics"
	"github.com/spectra-health/spectra/internal/emoji"
	"github.com/spectra-health/spectra/internal/formatter"
)

var eventsFormat string

func newEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events [file]",
		Short: "Summarize a recorded analytics file",
		Long: `Summarize a JSON-lines analytics file written by the file sink.

Without an argument the file configured under analytics.file_path is read.
Lines that are not valid events are counted and skipped.

Examples:
  spectra events
  spectra events ~/.local/state/spectra/events.jsonl
  spectra events --format json events.jsonl
  spectra events --format markdown > report.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEvents,
	}

	cmd.Flags().StringVarP(&eventsFormat, "format", "f", "table", "output format (table, json, csv, markdown)")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.Analytics.FilePath
	}
	if path == "" {
		return fmt.Errorf("no analytics file given and analytics.file_path is empty")
	}

	// #nosec G304 - reading a user-specified event log is the purpose of this command
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open events file: %w", err)
	}
	defer func() { _ = f.Close() }()

	summary, err := analytics.Summarize(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if eventsFormat == "table" {
		return writeSummaryTable(out, path, summary)
	}

	report, err := formatter.New(eventsFormat)
	if err != nil {
		return err
	}
	data, err := report.Format(summary)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func writeSummaryTable(w io.Writer, path string, s *analytics.Summary) error {
	fmt.Fprintf(w, "%s Analytics summary: %s\n\n", emoji.GetEmoji("stat"), path)

	overview := tablewriter.NewWriter(w)
	overview.Header("Metric", "Value")
	rows := [][]string{
		{"Events", fmt.Sprint(s.Total)},
		{"Sessions", fmt.Sprint(s.Sessions)},
		{"Invalid lines", fmt.Sprint(s.Invalid)},
		{"First event", formatTime(s.First)},
		{"Last event", formatTime(s.Last)},
	}
	for _, row := range rows {
		if err := overview.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	if err := overview.Render(); err != nil {
		return err
	}

	if s.Total == 0 {
		fmt.Fprintf(w, "\n%s No events recorded yet\n", emoji.GetEmoji("warning"))
		return nil
	}

	fmt.Fprintln(w)
	if err := writeCountTable(w, "Event", s.Sorted()); err != nil {
		return err
	}

	if buttons := s.SortedButtons(); len(buttons) > 0 {
		fmt.Fprintln(w)
		if err := writeCountTable(w, "Button", buttons); err != nil {
			return err
		}
	}
	return nil
}

func writeCountTable(w io.Writer, label string, counts []analytics.EventCount) error {
	table := tablewriter.NewWriter(w)
	table.Header(label, "Count")
	for _, c := range counts {
		if err := table.Append(c.Name, fmt.Sprint(c.Count)); err != nil {
			return err
		}
	}
	return table.Render()
}

// printEvents renders recorded events in order with their offset from the
// first event
func printEvents(w io.Writer, events []analytics.Event) {
	if len(events) == 0 {
		return
	}
	start := events[0].Timestamp

	table := tablewriter.NewWriter(w)
	table.Header("#", "At", "Event", "Properties")
	for i, ev := range events {
		at := fmt.Sprintf("+%.2fs", ev.Timestamp.Sub(start).Seconds())
		_ = table.Append(fmt.Sprint(i+1), at, ev.Name, formatProperties(ev.Properties))
	}
	_ = table.Render()
}

// formatProperties renders a payload as sorted k=v pairs
func formatProperties(p analytics.Payload) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, " ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
