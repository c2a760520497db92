package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher hands timer callbacks to a running program so they execute on
// its update loop instead of the timer goroutine.
type Dispatcher struct {
	program atomic.Pointer[tea.Program]
	dropped atomic.Int64
}

// Attach binds the dispatcher to p. Callbacks before Attach are dropped.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.program.Store(p)
}

// Dispatch queues fn for the update loop. It blocks until the program
// accepts the message or exits.
func (d *Dispatcher) Dispatch(fn func()) {
	p := d.program.Load()
	if p == nil {
		d.dropped.Add(1)
		return
	}
	p.Send(scheduledMsg{fn: fn})
}

// Dropped counts callbacks that arrived with no program attached
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}
