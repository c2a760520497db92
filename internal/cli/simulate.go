package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spectra-health/spectra/internal/analytics"
	"github.com/spectra-health/spectra/internal/content"
	"github.com/spectra-health/spectra/internal/controller"
	"github.com/spectra-health/spectra/internal/emoji"
	"github.com/spectra-health/spectra/internal/logger"
	"github.com/spectra-health/spectra/internal/ui"
)

var (
	simWidth   int
	simHeight  int
	simFormat  string
	simRecord  bool
	simContent string
)

// simulationStart is the simulated wall clock a session starts at
var simulationStart = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// sampleValues are typed into the checkout form during a simulation.
// They never leave the form.
var sampleValues = map[string]string{
	"name":        "Ada Example",
	"email":       "ada@example.com",
	"card_number": "4242424242424242",
	"expiry":      "12/29",
	"cvc":         "123",
}

func newSimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted visit without a terminal UI",
		Long: `Run a scripted visit through the landing experience on a simulated clock
and print the analytics events it produces.

The visit reads the statistics, scrolls, opens the technology page, fills in
the pre-order form, submits it and returns home from the notice.

Examples:
  spectra simulate
  spectra simulate --format json
  spectra simulate --record`,
		Args: cobra.NoArgs,
		RunE: runSimulate,
	}

	cmd.Flags().IntVar(&simWidth, "width", 100, "simulated terminal width")
	cmd.Flags().IntVar(&simHeight, "height", 40, "simulated terminal height")
	cmd.Flags().StringVarP(&simFormat, "format", "f", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&simRecord, "record", false, "also send events to the configured analytics sinks")
	cmd.Flags().StringVar(&simContent, "content", "", "custom content file (YAML)")

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simFormat != "table" && simFormat != "json" {
		return fmt.Errorf("unsupported format: %s (use table or json)", simFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	contentPath := cfg.Content.Path
	if cmd.Flag("content").Changed {
		contentPath = simContent
	}
	page, err := content.Load(contentPath)
	if err != nil {
		return err
	}

	log := sessionLogger("simulate")

	var extra analytics.Sink
	if simRecord {
		sinks, err := buildSinks(cfg, false, log.WithComponent("analytics"))
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), sinkCloseTimeout)
			defer cancel()
			if err := sinks.Close(ctx); err != nil {
				log.Warn("analytics flush failed: %v", err)
			}
		}()
		extra = sinks.Sink
	}

	opts := landingOptions(cfg)
	opts.Logger = log
	events := simulate(page, opts, extra, simWidth, simHeight, log)

	out := cmd.OutOrStdout()
	if simFormat == "json" {
		return writeEventsJSON(out, events)
	}
	fmt.Fprintf(out, "%s Simulated visit recorded %d events\n\n", emoji.GetEmoji("pulse"), len(events))
	printEvents(out, events)
	return nil
}

// simStep is one scripted interaction followed by simulated idle time
type simStep struct {
	msg  tea.Msg
	wait time.Duration
}

func keyStep(k tea.KeyType, wait time.Duration) simStep {
	return simStep{msg: tea.KeyMsg{Type: k}, wait: wait}
}

// simulationScript is a visit that touches every page and field
func simulationScript(page *content.Page) []simStep {
	steps := []simStep{
		{wait: 800 * time.Millisecond},
	}

	// Read the home page
	for i := 0; i < 6; i++ {
		steps = append(steps, keyStep(tea.KeyDown, 400*time.Millisecond))
	}
	steps = append(steps, keyStep(tea.KeyPgDown, 1200*time.Millisecond))

	// Technology page, scrolled to the bottom
	steps = append(steps, keyStep(tea.KeyEnter, 1500*time.Millisecond))
	for i := 0; i < 4; i++ {
		steps = append(steps, keyStep(tea.KeyPgDown, 1200*time.Millisecond))
	}

	// Pre-order form
	steps = append(steps, keyStep(tea.KeyEnter, 500*time.Millisecond))
	for _, field := range page.Checkout.Fields {
		value, ok := sampleValues[field.ID]
		if !ok {
			value = "sample"
		}
		if field.CharLimit > 0 && len(value) > field.CharLimit {
			value = value[:field.CharLimit]
		}
		for _, r := range value {
			steps = append(steps, simStep{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, wait: 60 * time.Millisecond})
		}
		steps = append(steps, keyStep(tea.KeyEnter, 300*time.Millisecond))
	}

	// Submit, read the notice, go home and leave
	steps = append(steps,
		keyStep(tea.KeyEnter, 2*time.Second),
		keyStep(tea.KeyEnter, time.Second),
		simStep{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
	)
	return steps
}

// simulate drives a landing model through the script on a manual clock and
// returns the recorded events. extra, when set, receives every event too.
func simulate(page *content.Page, opts ui.Options, extra analytics.Sink, width, height int, log *logger.Logger) []analytics.Event {
	sched := controller.NewManualScheduler(simulationStart)
	mem := analytics.NewMemorySink().WithClock(sched.Now)
	opts.Clock = sched.Now

	model := ui.NewLandingModel(page, analytics.Multi(log, mem, extra), sched, opts)
	defer model.Close()

	model.Init()
	model.Update(tea.WindowSizeMsg{Width: width, Height: height})

	for _, step := range simulationScript(page) {
		if step.msg != nil {
			model.Update(step.msg)
		}
		sched.Advance(step.wait)
		if model.Controller().Closed() {
			break
		}
	}
	return mem.Events()
}

func writeEventsJSON(w io.Writer, events []analytics.Event) error {
	enc := json.NewEncoder(w)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}
