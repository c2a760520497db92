package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/spectra-health/spectra/internal/config"
	"github.com/spectra-health/spectra/internal/emoji"
	"github.com/spectra-health/spectra/internal/logger"
	"github.com/spectra-health/spectra/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spectra",
		Short: "Spectra pulse oximeter landing experience",
		Long: `Spectra is the landing experience for a pulse oximeter that reads accurately
across every skin tone.

It renders the product story, statistics and technology pages in the terminal,
walks through a simulated pre-order and records every interaction as an
analytics event.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			if noColor {
				ui.SetColorMode("never")
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")

	rootCmd.AddCommand(newOpenCommand())
	rootCmd.AddCommand(newSimulateCommand())
	rootCmd.AddCommand(newEventsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "spectra %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads the effective configuration honoring --config and
// applies the display settings it carries
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if cfg.Output.Verbose {
		verbose = true
	}
	if !ui.SetThemeByName(cfg.Output.Theme) && cfg.Output.Theme != "" {
		return nil, fmt.Errorf("unknown theme: %s", cfg.Output.Theme)
	}
	if noColor {
		ui.SetColorMode("never")
	} else {
		ui.SetColorMode(cfg.Output.ColorMode)
	}
	return cfg, nil
}

// newLogger returns a component logger writing to w
func newLogger(component string, w io.Writer) *logger.Logger {
	log := logger.NewWithCallback(component, isVerbose)
	log.SetOutput(w)
	return log
}

// openLogFile opens the configured TUI log file for appending. An empty
// path discards logs because the terminal belongs to the UI.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	// #nosec G304 - path comes from validated configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// Global helpers
func isVerbose() bool {
	return verbose
}
