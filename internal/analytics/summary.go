package analytics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// EventCount is one row of a summary
type EventCount struct {
	Name  string
	Count int
}

// Summary aggregates a JSON-lines event log
type Summary struct {
	Total    int
	Invalid  int
	Sessions int
	First    time.Time
	Last     time.Time
	Counts   map[string]int
	Buttons  map[string]int
}

// Summarize reads JSON-lines events from r. Lines that do not decode are
// counted as invalid rather than failing the whole read.
func Summarize(r io.Reader) (*Summary, error) {
	s := &Summary{
		Counts:  make(map[string]int),
		Buttons: make(map[string]int),
	}
	sessions := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Name == "" {
			s.Invalid++
			continue
		}

		s.Total++
		s.Counts[ev.Name]++
		if ev.DistinctID != "" {
			sessions[ev.DistinctID] = struct{}{}
		}
		if ev.Name == EventButtonClick {
			if button, ok := ev.Properties["button"].(string); ok {
				s.Buttons[button]++
			}
		}
		if !ev.Timestamp.IsZero() {
			if s.First.IsZero() || ev.Timestamp.Before(s.First) {
				s.First = ev.Timestamp
			}
			if ev.Timestamp.After(s.Last) {
				s.Last = ev.Timestamp
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	s.Sessions = len(sessions)
	return s, nil
}

// Sorted returns event counts ordered by count, then name
func (s *Summary) Sorted() []EventCount {
	return sortCounts(s.Counts)
}

// SortedButtons returns button click counts ordered by count, then name
func (s *Summary) SortedButtons() []EventCount {
	return sortCounts(s.Buttons)
}

func sortCounts(m map[string]int) []EventCount {
	out := make([]EventCount, 0, len(m))
	for name, count := range m {
		out = append(out, EventCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
