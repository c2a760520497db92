package analytics

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spectra-health/spectra/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageKind int

func (p pageKind) String() string { return "technology" }

func TestSanitizeCoercesValues(t *testing.T) {
	in := Payload{
		"button":    "learn_more",
		"position":  420,
		"depth":     55.5,
		"visible":   true,
		"timeSpent": 1500 * time.Millisecond,
		"page":      pageKind(1),
		"err":       errors.New("boom"),
		"list":      []int{1, 2},
		"nothing":   nil,
	}

	out := Sanitize(in)

	assert.Equal(t, "learn_more", out["button"])
	assert.Equal(t, 420, out["position"])
	assert.Equal(t, 55.5, out["depth"])
	assert.Equal(t, true, out["visible"])
	assert.Equal(t, 1.5, out["timeSpent"])
	assert.Equal(t, "technology", out["page"])
	assert.Equal(t, "boom", out["err"])
	assert.Equal(t, "[1 2]", out["list"])
	assert.Nil(t, out["nothing"])
	assert.Contains(t, out, "nothing")

	out["button"] = "changed"
	assert.Equal(t, "learn_more", in["button"], "sanitize must copy")
}

func TestSanitizeEmpty(t *testing.T) {
	assert.NotNil(t, Sanitize(nil))
	assert.Empty(t, Sanitize(nil))
}

func TestMemorySinkRecordsInOrder(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewMemorySink().WithClock(func() time.Time { return fixed })

	m.Record(EventPageView, Payload{"page": "home"})
	m.Record(EventButtonClick, Payload{"button": "learn_more"})
	m.Record(EventPageView, Payload{"page": "technology"})

	events := m.Events()
	require.Len(t, events, 3)
	assert.Equal(t, EventPageView, events[0].Name)
	assert.Equal(t, EventButtonClick, events[1].Name)
	assert.Equal(t, fixed, events[2].Timestamp)
	assert.Equal(t, 2, m.Count(EventPageView))
	assert.Equal(t, "learn_more", m.Named(EventButtonClick)[0].Properties["button"])

	m.Reset()
	assert.Empty(t, m.Events())
}

func TestGuardSwallowsPanics(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("test", nil)
	log.SetOutput(&buf)

	panicking := SinkFunc(func(string, Payload) { panic("collector down") })
	guarded := Guard(panicking, log)

	assert.NotPanics(t, func() { guarded.Record(EventScroll, nil) })
	assert.Contains(t, buf.String(), "analytics sink panicked")
	assert.Contains(t, buf.String(), "collector down")
}

func TestGuardNilSink(t *testing.T) {
	assert.NotPanics(t, func() { Guard(nil, nil).Record(EventScroll, nil) })
}

func TestMultiIsolatesSinks(t *testing.T) {
	first := NewMemorySink()
	second := NewMemorySink()
	broken := SinkFunc(func(string, Payload) { panic("nope") })

	sink := Multi(logger.Nop(), first, broken, nil, second)
	sink.Record(EventButtonClick, Payload{"button": "reserve_yours"})

	assert.Equal(t, 1, first.Count(EventButtonClick))
	assert.Equal(t, 1, second.Count(EventButtonClick))
}

func TestMultiEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Multi(nil).Record(EventScroll, nil) })
}

func TestWriterSinkWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf, "visitor-1", nil)

	s.Record(EventPageView, Payload{"page": "home"})
	s.Record(EventScroll, Payload{"position": 220, "page": "home"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"event":"page_view"`)
	assert.Contains(t, lines[0], `"distinct_id":"visitor-1"`)
	assert.Contains(t, lines[1], `"position":220`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterSinkSwallowsWriteErrors(t *testing.T) {
	var logs bytes.Buffer
	log := logger.New("test", nil)
	log.SetOutput(&logs)

	s := NewWriterSink(failingWriter{}, "visitor-1", log)
	assert.NotPanics(t, func() { s.Record(EventPageView, nil) })
	assert.Contains(t, logs.String(), "disk full")
}

func TestFileSinkAppends(t *testing.T) {
	path := t.TempDir() + "/nested/events.jsonl"

	s, err := NewFileSink(path, "visitor-2", nil)
	require.NoError(t, err)
	s.Record(EventPageView, Payload{"page": "home"})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	s, err = NewFileSink(path, "visitor-2", nil)
	require.NoError(t, err)
	s.Record(EventPageView, Payload{"page": "technology"})
	require.NoError(t, s.Close())

	summary, err := summarizeFile(t, path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Counts[EventPageView])
}

func TestSummarize(t *testing.T) {
	input := strings.Join([]string{
		`{"event":"page_view","distinct_id":"a","properties":{"page":"home"},"timestamp":"2026-03-01T10:00:00Z"}`,
		`{"event":"button_click","distinct_id":"a","properties":{"button":"learn_more"},"timestamp":"2026-03-01T10:00:05Z"}`,
		``,
		`not json`,
		`{"event":"button_click","distinct_id":"b","properties":{"button":"learn_more"},"timestamp":"2026-03-01T09:59:00Z"}`,
		`{"event":"button_click","distinct_id":"b","properties":{"button":"reserve_yours"},"timestamp":"2026-03-01T10:01:00Z"}`,
		`{"distinct_id":"c"}`,
	}, "\n")

	s, err := Summarize(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Invalid)
	assert.Equal(t, 2, s.Sessions)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 59, 0, 0, time.UTC), s.First.UTC())
	assert.Equal(t, time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC), s.Last.UTC())

	sorted := s.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, EventCount{Name: EventButtonClick, Count: 3}, sorted[0])
	assert.Equal(t, EventCount{Name: EventPageView, Count: 1}, sorted[1])

	buttons := s.SortedButtons()
	assert.Equal(t, []EventCount{{Name: "learn_more", Count: 2}, {Name: "reserve_yours", Count: 1}}, buttons)
}

func TestNewDistinctIDIsUnique(t *testing.T) {
	a, b := NewDistinctID(), NewDistinctID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
