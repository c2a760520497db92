package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spectra-health/spectra/internal/analytics"
	"github.com/spectra-health/spectra/internal/content"
	"github.com/spectra-health/spectra/internal/controller"
	"github.com/spectra-health/spectra/internal/logger"
)

// RunConfig is everything needed to run the landing TUI
type RunConfig struct {
	Page        *content.Page
	Sink        analytics.Sink
	Options     Options
	MouseWheel  bool
	ContentPath string
	Watch       bool
	Logger      *logger.Logger
}

// Run runs the landing TUI until the user quits or ctx is cancelled
func Run(ctx context.Context, cfg RunConfig) error {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg.Options.Logger = log

	dispatcher := &Dispatcher{}
	sched := controller.NewTickerScheduler(dispatcher.Dispatch)
	model := NewLandingModel(cfg.Page, cfg.Sink, sched, cfg.Options)
	defer model.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.MouseWheel {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	dispatcher.Attach(p)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Watch && cfg.ContentPath != "" {
		go func() {
			err := content.Watch(watchCtx, cfg.ContentPath, log.WithComponent("content"), func(page *content.Page) {
				p.Send(ContentReloaded(page))
			})
			if err != nil {
				log.Warn("content watch stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("landing UI failed: %w", err)
	}
	return nil
}
