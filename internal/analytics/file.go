package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spectra-health/spectra/internal/logger"
)

// FileSink appends events as JSON lines
type FileSink struct {
	mu         sync.Mutex
	w          io.Writer
	closer     io.Closer
	distinctID string
	now        func() time.Time
	log        *logger.Logger
}

// NewFileSink opens path for appending, creating parent directories
func NewFileSink(path, distinctID string, log *logger.Logger) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create analytics directory %s: %w", dir, err)
		}
	}

	// #nosec G304 - path comes from validated configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics file: %w", err)
	}

	s := NewWriterSink(f, distinctID, log)
	s.closer = f
	return s, nil
}

// NewWriterSink writes JSON lines to w
func NewWriterSink(w io.Writer, distinctID string, log *logger.Logger) *FileSink {
	if log == nil {
		log = logger.Nop()
	}
	if distinctID == "" {
		distinctID = NewDistinctID()
	}
	return &FileSink{
		w:          w,
		distinctID: distinctID,
		now:        time.Now,
		log:        log.WithComponent("analytics-file"),
	}
}

// Record implements Sink
func (s *FileSink) Record(name string, payload Payload) {
	line, err := json.Marshal(Event{
		Name:       name,
		DistinctID: s.distinctID,
		Properties: Sanitize(payload),
		Timestamp:  s.now().UTC(),
	})
	if err != nil {
		s.log.WarnWithFields("failed to encode event", []logger.Field{logger.Event(name), logger.Error(err)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(line, '\n')); err != nil {
		s.log.WarnWithFields("failed to write event", []logger.Field{logger.Event(name), logger.Error(err)})
	}
}

// Close closes the underlying file, if any
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
