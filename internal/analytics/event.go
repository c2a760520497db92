// Package analytics records named landing page events with flat payloads.
//
// Every sink is fire-and-forget: Record never returns an error and never
// blocks on the network. Delivery problems are logged and dropped so they
// cannot affect navigation or rendering.
package analytics

import (
	"fmt"
	"time"
)

// Event names emitted by the landing page
const (
	EventPageView          = "page_view"
	EventPageTime          = "page_time"
	EventButtonClick       = "button_click"
	EventScroll            = "scroll"
	EventPriorityListShown = "priority_list_shown"
	EventCheckoutField     = "checkout_field"
	EventSessionDuration   = "session_duration"
)

// Payload is a flat mapping of keys to primitive values
type Payload map[string]any

// Sink accepts analytics events
type Sink interface {
	Record(name string, payload Payload)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(name string, payload Payload)

// Record calls f
func (f SinkFunc) Record(name string, payload Payload) {
	f(name, payload)
}

// Nop discards every event
var Nop Sink = SinkFunc(func(string, Payload) {})

// Event is a single captured event in PostHog capture shape
type Event struct {
	Name       string    `json:"event"`
	DistinctID string    `json:"distinct_id"`
	Properties Payload   `json:"properties,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Sanitize returns a copy of p where every value is a primitive.
// Durations become seconds, anything else non-primitive becomes its string form.
func Sanitize(p Payload) Payload {
	if len(p) == 0 {
		return Payload{}
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = primitive(v)
	}
	return out
}

func primitive(v any) any {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case time.Duration:
		return val.Seconds()
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}
