package controller

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualSchedulerFiresInOrder(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManualScheduler(start)

	var order []string
	m.Every(300*time.Millisecond, func() { order = append(order, "slow") })
	m.Every(200*time.Millisecond, func() { order = append(order, "fast") })

	m.Advance(600 * time.Millisecond)

	assert.Equal(t, []string{"fast", "slow", "fast", "slow", "fast"}, order)
	assert.Equal(t, start.Add(600*time.Millisecond), m.Now())
}

func TestManualSchedulerStop(t *testing.T) {
	m := NewManualScheduler(time.Unix(0, 0))
	calls := 0
	stop := m.Every(100*time.Millisecond, func() { calls++ })

	m.Advance(250 * time.Millisecond)
	stop()
	stop()
	m.Advance(time.Second)

	assert.Equal(t, 2, calls)
	assert.Zero(t, m.Active())
}

func TestManualSchedulerStopFromCallback(t *testing.T) {
	m := NewManualScheduler(time.Unix(0, 0))
	calls := 0
	var stop func()
	stop = m.Every(100*time.Millisecond, func() {
		calls++
		if calls == 2 {
			stop()
		}
	})

	m.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestTickerSchedulerDispatchesAndStops(t *testing.T) {
	var dispatched atomic.Int32
	var ran atomic.Int32
	s := NewTickerScheduler(func(fn func()) {
		dispatched.Add(1)
		fn()
	})

	stop := s.Every(5*time.Millisecond, func() { ran.Add(1) })
	assert.Eventually(t, func() bool { return ran.Load() >= 2 }, time.Second, time.Millisecond)
	stop()
	stop()

	settled := ran.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, ran.Load(), settled+1)
	assert.Equal(t, dispatched.Load(), ran.Load())
}
