package analytics

import (
	"sync"
	"time"
)

// MemorySink keeps every recorded event in memory
type MemorySink struct {
	mu         sync.Mutex
	events     []Event
	distinctID string
	now        func() time.Time
}

// NewMemorySink creates an empty recorder
func NewMemorySink() *MemorySink {
	return &MemorySink{
		distinctID: "local",
		now:        time.Now,
	}
}

// WithClock sets the clock used to timestamp events
func (m *MemorySink) WithClock(now func() time.Time) *MemorySink {
	m.now = now
	return m
}

// Record implements Sink
func (m *MemorySink) Record(name string, payload Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{
		Name:       name,
		DistinctID: m.distinctID,
		Properties: Sanitize(payload),
		Timestamp:  m.now(),
	})
}

// Events returns a copy of the recorded events in emission order
func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Named returns the recorded events with the given name
func (m *MemorySink) Named(name string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events with the given name were recorded
func (m *MemorySink) Count(name string) int {
	return len(m.Named(name))
}

// Reset forgets all recorded events
func (m *MemorySink) Reset() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
