package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spectra-health/spectra/internal/analytics"
	"github.com/spectra-health/spectra/internal/config"
	"github.com/spectra-health/spectra/internal/logger"
)

// sinkSet is the analytics pipeline for one session
type sinkSet struct {
	Sink    analytics.Sink
	Memory  *analytics.MemorySink
	posthog *analytics.PostHogSink
	file    *analytics.FileSink
}

// buildSinks wires the configured sinks under one distinct ID. Dry runs
// record into memory only.
func buildSinks(cfg *config.Config, dryRun bool, log *logger.Logger) (*sinkSet, error) {
	set := &sinkSet{}
	if dryRun {
		set.Memory = analytics.NewMemorySink()
		set.Sink = analytics.Guard(set.Memory, log)
		return set, nil
	}
	if !cfg.Analytics.Enabled {
		set.Sink = analytics.Nop
		return set, nil
	}

	distinctID := analytics.NewDistinctID()
	var sinks []analytics.Sink

	if cfg.HasSink("posthog") {
		ph, err := analytics.NewPostHogSink(analytics.PostHogConfig{
			Endpoint:      cfg.Analytics.Endpoint,
			APIKey:        cfg.Analytics.APIKey,
			DistinctID:    distinctID,
			Timeout:       cfg.Analytics.Timeout,
			BatchSize:     cfg.Analytics.BatchSize,
			FlushInterval: cfg.Analytics.FlushInterval,
			QueueSize:     cfg.Analytics.QueueSize,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create posthog sink: %w", err)
		}
		set.posthog = ph
		sinks = append(sinks, ph)
	}

	if cfg.HasSink("file") {
		fs, err := analytics.NewFileSink(cfg.Analytics.FilePath, distinctID, log)
		if err != nil {
			_ = set.Close(context.Background())
			return nil, fmt.Errorf("failed to create file sink: %w", err)
		}
		set.file = fs
		sinks = append(sinks, fs)
	}

	set.Sink = analytics.Multi(log, sinks...)
	log.DebugWithFields("analytics sinks ready", []logger.Field{
		logger.Count(len(sinks)),
		logger.F("distinct_id", distinctID),
	})
	return set, nil
}

// Close flushes the network sink and closes the event file
func (s *sinkSet) Close(ctx context.Context) error {
	var errs []error
	if s.posthog != nil {
		if err := s.posthog.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
