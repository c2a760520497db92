package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spectra-health/spectra/internal/config"
	"github.com/spectra-health/spectra/internal/content"
	"github.com/spectra-health/spectra/internal/controller"
	"github.com/spectra-health/spectra/internal/emoji"
	"github.com/spectra-health/spectra/internal/logger"
	"github.com/spectra-health/spectra/internal/ui"
)

// sinkCloseTimeout bounds the final analytics flush on exit
const sinkCloseTimeout = 5 * time.Second

var (
	openDryRun  bool
	openWatch   bool
	openContent string
)

func newOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the landing experience",
		Long: `Open the interactive landing experience in the terminal.

Navigate with enter and esc, scroll with the arrow keys, page keys or the
mouse wheel, and quit with q. Interaction events go to the analytics sinks
named in the configuration.

Examples:
  spectra open
  spectra open --dry-run
  spectra open --content ./copy.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: runOpen,
	}

	cmd.Flags().BoolVar(&openDryRun, "dry-run", false, "record analytics in memory and print them on exit")
	cmd.Flags().BoolVar(&openWatch, "watch", false, "reload the content file when it changes")
	cmd.Flags().StringVar(&openContent, "content", "", "custom content file (YAML)")

	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	contentPath := cfg.Content.Path
	if cmd.Flag("content").Changed {
		contentPath = openContent
	}
	watch := cfg.Content.Watch
	if cmd.Flag("watch").Changed {
		watch = openWatch
	}

	page, err := content.Load(contentPath)
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogFile(cfg.Output.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log := newLogger("spectra", logOut)

	sinks, err := buildSinks(cfg, openDryRun, log.WithComponent("analytics"))
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("opening landing experience")
	err = ui.Run(ctx, ui.RunConfig{
		Page:        page,
		Sink:        sinks.Sink,
		Options:     landingOptions(cfg),
		MouseWheel:  cfg.Output.MouseWheel,
		ContentPath: contentPath,
		Watch:       watch,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	if sinks.Memory != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Recorded %d events (dry run)\n", emoji.GetEmoji("stat"), len(sinks.Memory.Events()))
		printEvents(out, sinks.Memory.Events())
	}
	return nil
}

// landingOptions maps configuration onto the landing model thresholds
func landingOptions(cfg *config.Config) ui.Options {
	opts := ui.DefaultOptions()
	opts.PixelsPerLine = cfg.Scroll.PixelsPerLine
	opts.Controller = controller.Options{
		ScrollInterval: cfg.Scroll.ThrottleInterval,
		ScrollMinDelta: cfg.Scroll.MinDelta,
		RevealCount:    cfg.Reveal.Count,
		RevealInterval: cfg.Reveal.Interval,
		Curve: controller.AnimationCurve{
			Range:     cfg.Animation.Range,
			MaxOffset: cfg.Animation.MaxOffset,
		},
	}
	return opts
}

// sessionLogger is used by headless commands that own stderr
func sessionLogger(component string) *logger.Logger {
	return newLogger(component, os.Stderr)
}
