package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spectra-health/spectra/internal/logger"
)

// PostHogConfig configures the PostHog batch sink
type PostHogConfig struct {
	Endpoint      string
	APIKey        string
	DistinctID    string
	Timeout       time.Duration
	BatchSize     int
	FlushInterval time.Duration
	QueueSize     int
}

// DefaultPostHogConfig returns sensible defaults for the batch sink
func DefaultPostHogConfig() PostHogConfig {
	return PostHogConfig{
		Endpoint:      "https://us.i.posthog.com",
		Timeout:       5 * time.Second,
		BatchSize:     20,
		FlushInterval: 2 * time.Second,
		QueueSize:     256,
	}
}

type captureItem struct {
	Event      string  `json:"event"`
	DistinctID string  `json:"distinct_id"`
	Properties Payload `json:"properties,omitempty"`
	Timestamp  string  `json:"timestamp"`
}

type batchBody struct {
	APIKey string        `json:"api_key"`
	Batch  []captureItem `json:"batch"`
}

// PostHogSink queues events and ships them to a PostHog compatible /batch/
// endpoint from a background worker. Record never blocks; when the queue is
// full the event is dropped and counted.
type PostHogSink struct {
	cfg    PostHogConfig
	client *resty.Client
	log    *logger.Logger
	now    func() time.Time

	queue chan Event
	done  chan struct{}
	wg    sync.WaitGroup

	// mu orders Record against Close so nothing is enqueued after the
	// worker has drained the queue
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	sent      atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

// NewPostHogSink validates cfg and starts the delivery worker
func NewPostHogSink(cfg PostHogConfig, log *logger.Logger) (*PostHogSink, error) {
	defaults := DefaultPostHogConfig()
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("posthog endpoint is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("posthog api key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.DistinctID == "" {
		cfg.DistinctID = NewDistinctID()
	}
	if log == nil {
		log = logger.Nop()
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "spectra-analytics")

	s := &PostHogSink{
		cfg:    cfg,
		client: client,
		log:    log.WithComponent("posthog"),
		now:    time.Now,
		queue:  make(chan Event, cfg.QueueSize),
		done:   make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	return s, nil
}

// DistinctID returns the visitor identifier attached to every event
func (s *PostHogSink) DistinctID() string {
	return s.cfg.DistinctID
}

// Record implements Sink
func (s *PostHogSink) Record(name string, payload Payload) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}
	ev := Event{
		Name:       name,
		DistinctID: s.cfg.DistinctID,
		Properties: Sanitize(payload),
		Timestamp:  s.now(),
	}
	select {
	case s.queue <- ev:
	default:
		s.dropped.Add(1)
		s.log.WarnWithFields("queue full, dropping event", []logger.Field{logger.Event(name)})
	}
}

// Stats returns delivered, dropped and failed event counts
func (s *PostHogSink) Stats() (sent, dropped, failed int64) {
	return s.sent.Load(), s.dropped.Load(), s.failed.Load()
}

// Close stops accepting events, flushes what is queued and waits for the
// worker to finish or ctx to expire.
func (s *PostHogSink) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.done)
		s.mu.Unlock()
	})

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("posthog flush interrupted: %w", ctx.Err())
	}
}

func (s *PostHogSink) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, s.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.send(batch)
		batch = batch[:0]
	}

	for {
		select {
		case ev := <-s.queue:
			batch = append(batch, ev)
			if len(batch) >= s.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for {
				select {
				case ev := <-s.queue:
					batch = append(batch, ev)
					if len(batch) >= s.cfg.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// send delivers one batch. Failures are logged and counted, never retried.
func (s *PostHogSink) send(events []Event) {
	body := batchBody{
		APIKey: s.cfg.APIKey,
		Batch:  make([]captureItem, 0, len(events)),
	}
	for _, ev := range events {
		body.Batch = append(body.Batch, captureItem{
			Event:      ev.Name,
			DistinctID: ev.DistinctID,
			Properties: ev.Properties,
			Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/batch/")
	if err != nil {
		s.failed.Add(int64(len(events)))
		s.log.WarnWithFields("batch delivery failed", []logger.Field{logger.Count(len(events)), logger.Error(err)})
		return
	}
	if resp.IsError() {
		s.failed.Add(int64(len(events)))
		s.log.WarnWithFields("batch rejected", []logger.Field{logger.Count(len(events)), logger.F("status", resp.StatusCode())})
		return
	}

	s.sent.Add(int64(len(events)))
	s.log.DebugWithFields("batch delivered", []logger.Field{logger.Count(len(events))})
}
