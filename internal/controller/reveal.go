package controller

import "time"

// Reveal defaults for the statistic cards
const (
	DefaultRevealCount    = 3
	DefaultRevealInterval = 200 * time.Millisecond
)

// SequencedReveal discloses indices 0..count-1 one per interval.
// Restarting cancels the running timer before scheduling a new one, and
// ticks that belong to a stopped or cancelled run are ignored, including
// ticks a scheduler had already queued when the run stopped.
type SequencedReveal struct {
	sched    Scheduler
	gen      uint64
	count    int
	revealed []int
	stop     func()
	onChange func()
}

func newSequencedReveal(sched Scheduler) *SequencedReveal {
	return &SequencedReveal{sched: sched}
}

// Start resets the revealed set and begins a new sequence
func (r *SequencedReveal) Start(count int, interval time.Duration) {
	r.Stop()
	r.gen++
	r.revealed = nil
	r.count = count
	r.changed()

	if count <= 0 {
		return
	}
	if interval <= 0 {
		interval = DefaultRevealInterval
	}

	gen := r.gen
	r.stop = r.sched.Every(interval, func() { r.tick(gen) })
}

// Stop cancels the running sequence and keeps what was already revealed
func (r *SequencedReveal) Stop() {
	r.gen++
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// Running reports whether a timer is active
func (r *SequencedReveal) Running() bool {
	return r.stop != nil
}

// Revealed returns the revealed indices in order
func (r *SequencedReveal) Revealed() []int {
	out := make([]int, len(r.revealed))
	copy(out, r.revealed)
	return out
}

// IsRevealed reports whether index i has been disclosed
func (r *SequencedReveal) IsRevealed(i int) bool {
	return i >= 0 && i < len(r.revealed)
}

func (r *SequencedReveal) tick(gen uint64) {
	if gen != r.gen {
		return
	}
	if len(r.revealed) < r.count {
		r.revealed = append(r.revealed, len(r.revealed))
		r.changed()
	}
	if len(r.revealed) >= r.count {
		r.Stop()
	}
}

func (r *SequencedReveal) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}
