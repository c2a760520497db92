// Package throttle limits how often a moving position is reported.
package throttle

import "time"

// Defaults used by the landing page scroll tracking
const (
	DefaultMinInterval = 1000 * time.Millisecond
	DefaultMinDelta    = 100
)

// Gate admits a position report only when enough time has passed since the
// last admitted report and the position moved far enough from it.
type Gate struct {
	minInterval time.Duration
	minDelta    int

	lastAt       time.Time
	lastPosition int
	reported     bool
}

// New creates a gate. Non-positive arguments fall back to the defaults.
func New(minInterval time.Duration, minDelta int) *Gate {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if minDelta <= 0 {
		minDelta = DefaultMinDelta
	}
	return &Gate{
		minInterval: minInterval,
		minDelta:    minDelta,
	}
}

// Allow reports whether position should be reported at now. An admitted
// report becomes the new baseline for both time and distance.
func (g *Gate) Allow(now time.Time, position int) bool {
	if g.reported && now.Sub(g.lastAt) < g.minInterval {
		return false
	}
	if abs(position-g.lastPosition) <= g.minDelta {
		return false
	}

	g.lastAt = now
	g.lastPosition = position
	g.reported = true
	return true
}

// Reset moves the distance baseline without opening the time window.
func (g *Gate) Reset(position int) {
	g.lastPosition = position
}

// LastReported returns the last admitted position.
func (g *Gate) LastReported() int {
	return g.lastPosition
}

// MinInterval returns the configured interval
func (g *Gate) MinInterval() time.Duration {
	return g.minInterval
}

// MinDelta returns the configured distance threshold
func (g *Gate) MinDelta() int {
	return g.minDelta
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
