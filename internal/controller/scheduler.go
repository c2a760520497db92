package controller

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned stop function is
// called. Stop must be safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// TickerScheduler drives callbacks from real tickers. Each tick is handed to
// dispatch, which is expected to run fn on the owner's event loop so that
// state is only ever touched from one place.
type TickerScheduler struct {
	dispatch func(fn func())
}

// NewTickerScheduler creates a scheduler. A nil dispatch calls fn directly
// from the ticker goroutine.
func NewTickerScheduler(dispatch func(fn func())) *TickerScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &TickerScheduler{dispatch: dispatch}
}

// Every implements Scheduler
func (s *TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case <-stopCh:
					return
				default:
				}
				s.dispatch(fn)
			}
		}
	}()

	return func() {
		once.Do(func() { close(stopCh) })
	}
}

// ManualScheduler is a simulated clock and scheduler. Time only moves when
// Advance is called. It is not safe for concurrent use.
type ManualScheduler struct {
	now    time.Time
	nextID int
	tasks  []*manualTask
}

type manualTask struct {
	id       int
	interval time.Duration
	next     time.Time
	fn       func()
	stopped  bool
}

// NewManualScheduler starts simulated time at start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the simulated time
func (m *ManualScheduler) Now() time.Time {
	return m.now
}

// Every implements Scheduler
func (m *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}
	m.nextID++
	task := &manualTask{
		id:       m.nextID,
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
	}
	m.tasks = append(m.tasks, task)
	return func() { task.stopped = true }
}

// Advance moves simulated time forward by d, firing due callbacks in time
// order. Callbacks may start or stop other tasks.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		m.prune()
		task := m.nextDue(target)
		if task == nil {
			break
		}
		m.now = task.next
		task.next = task.next.Add(task.interval)
		task.fn()
	}
	m.now = target
}

// Active returns how many tasks are still scheduled
func (m *ManualScheduler) Active() int {
	m.prune()
	return len(m.tasks)
}

func (m *ManualScheduler) nextDue(target time.Time) *manualTask {
	due := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.stopped && !t.next.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next.Equal(due[j].next) {
			return due[i].id < due[j].id
		}
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

func (m *ManualScheduler) prune() {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
}
