// Package controller owns the landing page view state: which page is
// showing, which dialogs are open, how far the document is scrolled and the
// entrance animations derived from it.
//
// A Controller is driven from a single event loop. None of its methods
// lock, block or fail; analytics are recorded through a guarded sink.
package controller

import (
	"time"

	"github.com/spectra-health/spectra/internal/analytics"
	"github.com/spectra-health/spectra/internal/logger"
	"github.com/spectra-health/spectra/internal/throttle"
)

// Surface is the rendering surface the controller drives
type Surface interface {
	ScrollTo(position int)
}

// SurfaceFunc adapts a function to Surface
type SurfaceFunc func(position int)

// ScrollTo calls f
func (f SurfaceFunc) ScrollTo(position int) {
	f(position)
}

// Options tunes the controller's thresholds
type Options struct {
	ScrollInterval time.Duration
	ScrollMinDelta int
	RevealCount    int
	RevealInterval time.Duration
	Curve          AnimationCurve
}

// DefaultOptions returns the landing page defaults
func DefaultOptions() Options {
	return Options{
		ScrollInterval: throttle.DefaultMinInterval,
		ScrollMinDelta: throttle.DefaultMinDelta,
		RevealCount:    DefaultRevealCount,
		RevealInterval: DefaultRevealInterval,
		Curve:          DefaultCurve(),
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithOptions replaces the thresholds
func WithOptions(opts Options) Option {
	return func(c *Controller) { c.opts = opts }
}

// WithClock sets the wall clock used for throttling and durations
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log.WithComponent("controller")
		}
	}
}

// WithRevealListener is called whenever the revealed set changes
func WithRevealListener(fn func()) Option {
	return func(c *Controller) { c.onReveal = fn }
}

// Controller mediates page navigation and exposes derived display state
type Controller struct {
	surface Surface
	sink    analytics.Sink
	sched   Scheduler
	now     func() time.Time
	log     *logger.Logger
	opts    Options

	state       ViewState
	scroll      int
	scrollLimit int
	gate        *throttle.Gate
	reveal      *SequencedReveal
	onReveal    func()
	modals      map[ModalKind]bool

	sessionStart  time.Time
	pageEnteredAt time.Time
	started       bool
	closed        bool
}

// New creates a controller showing Home. Nothing is emitted until Start.
//
// sched must deliver callbacks on the same loop that drives the controller,
// e.g. a TickerScheduler whose dispatch posts to the UI program. A nil sched
// gets an inert ManualScheduler, so timers only fire when it is advanced.
func New(surface Surface, sink analytics.Sink, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		now:     time.Now,
		log:     logger.Nop(),
		opts:    DefaultOptions(),
		state:   Home,
		modals:  make(map[ModalKind]bool),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.surface == nil {
		c.surface = SurfaceFunc(func(int) {})
	}
	if sched == nil {
		sched = NewManualScheduler(c.now())
	}
	c.sched = sched
	c.sink = analytics.Guard(sink, c.log)
	c.gate = throttle.New(c.opts.ScrollInterval, c.opts.ScrollMinDelta)
	c.reveal = newSequencedReveal(sched)
	c.reveal.onChange = func() {
		if c.onReveal != nil {
			c.onReveal()
		}
	}

	return c
}

// Start records the initial page view and begins the stat card reveal.
// Calling it again has no effect.
func (c *Controller) Start() {
	if c.started || c.closed {
		return
	}
	c.started = true
	now := c.now()
	c.sessionStart = now
	c.pageEnteredAt = now

	c.record(analytics.EventPageView, analytics.Payload{"page": c.state.String()})
	if c.state == Home {
		c.StartSequencedReveal(c.opts.RevealCount, c.opts.RevealInterval)
	}
}

// State returns the current page
func (c *Controller) State() ViewState {
	return c.state
}

// Scroll returns the stored scroll position in pixels
func (c *Controller) Scroll() int {
	return c.scroll
}

// Closed reports whether Close has been called
func (c *Controller) Closed() bool {
	return c.closed
}

// TransitionTo switches to next, scrolls the surface to the top and records
// the control that triggered it. It cannot fail.
func (c *Controller) TransitionTo(next ViewState, control string) {
	if c.closed {
		return
	}

	if control != "" {
		c.record(analytics.EventButtonClick, analytics.Payload{"button": control})
	}

	prev := c.state
	changed := prev != next
	if changed {
		c.recordPageTime()
	}

	c.state = next
	c.scroll = 0
	c.gate.Reset(0)
	c.surface.ScrollTo(0)

	switch {
	case next == Home:
		c.StartSequencedReveal(c.opts.RevealCount, c.opts.RevealInterval)
	case prev == Home:
		c.reveal.Stop()
	}

	if changed {
		c.pageEnteredAt = c.now()
		c.record(analytics.EventPageView, analytics.Payload{"page": next.String()})
	}

	c.log.DebugWithFields("transition", []logger.Field{
		logger.F("from", prev),
		logger.F("to", next),
		logger.F("control", control),
	})
}

// SetScrollLimit tells the controller how far the document can scroll.
// Zero or negative means unknown.
func (c *Controller) SetScrollLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	c.scrollLimit = limit
	if c.scrollLimit > 0 && c.scroll > c.scrollLimit {
		c.scroll = c.scrollLimit
	}
}

// OnScroll stores a new scroll position and reports it when the movement
// passes the throttle.
func (c *Controller) OnScroll(position int) {
	if c.closed {
		return
	}

	position = c.clampScroll(position)
	direction := "down"
	if position < c.gate.LastReported() {
		direction = "up"
	}
	c.scroll = position

	if !c.gate.Allow(c.now(), position) {
		return
	}

	payload := analytics.Payload{
		"position":  position,
		"page":      c.state.String(),
		"direction": direction,
	}
	if c.scrollLimit > 0 {
		payload["depth"] = position * 100 / c.scrollLimit
	}
	c.record(analytics.EventScroll, payload)
}

// ComputeAnimation returns the entrance animation for an element at the
// current scroll position. It has no side effects.
func (c *Controller) ComputeAnimation(elementID string, startThreshold int) AnimationParams {
	return c.opts.Curve.At(elementID, c.scroll, startThreshold)
}

// StartSequencedReveal restarts the staggered reveal from empty
func (c *Controller) StartSequencedReveal(count int, interval time.Duration) {
	if c.closed {
		return
	}
	c.reveal.Start(count, interval)
}

// Revealed returns the indices disclosed so far
func (c *Controller) Revealed() []int {
	return c.reveal.Revealed()
}

// IsRevealed reports whether index i has been disclosed
func (c *Controller) IsRevealed(i int) bool {
	return c.reveal.IsRevealed(i)
}

// OpenModal shows the dialog of the given kind
func (c *Controller) OpenModal(kind ModalKind) {
	if c.closed || c.modals[kind] {
		return
	}
	c.modals[kind] = true
	if kind == ModalNotLaunched {
		c.record(analytics.EventPriorityListShown, analytics.Payload{"page": c.state.String()})
	}
}

// CloseModal hides the dialog. Closing the not-launched notice always
// returns to Home since there is no checkout to continue.
func (c *Controller) CloseModal(kind ModalKind) {
	if c.closed {
		return
	}
	delete(c.modals, kind)
	if kind == ModalNotLaunched {
		c.TransitionTo(Home, ControlReturnHome)
	}
}

// ModalOpen reports whether the dialog is showing
func (c *Controller) ModalOpen(kind ModalKind) bool {
	return c.modals[kind]
}

// AnyModalOpen reports whether some dialog is showing
func (c *Controller) AnyModalOpen() bool {
	return len(c.modals) > 0
}

// Click records a control that does not change the page
func (c *Controller) Click(control string) {
	if c.closed || control == "" {
		return
	}
	c.record(analytics.EventButtonClick, analytics.Payload{"button": control, "page": c.state.String()})
}

// TrackField records an interaction with a checkout field. Values are
// never part of the payload.
func (c *Controller) TrackField(field string, action FieldAction) {
	if c.closed || field == "" {
		return
	}
	c.record(analytics.EventCheckoutField, analytics.Payload{
		"field":  field,
		"action": string(action),
		"page":   c.state.String(),
	})
}

// Close releases the reveal timer and records how long the visit lasted.
// It is safe to call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.reveal.Stop()
	if c.started {
		c.recordPageTime()
		c.record(analytics.EventSessionDuration, analytics.Payload{
			"seconds": c.now().Sub(c.sessionStart).Seconds(),
			"page":    c.state.String(),
		})
	}
	c.closed = true
}

func (c *Controller) recordPageTime() {
	if !c.started {
		return
	}
	c.record(analytics.EventPageTime, analytics.Payload{
		"page":      c.state.String(),
		"timeSpent": c.now().Sub(c.pageEnteredAt).Seconds(),
	})
}

func (c *Controller) clampScroll(position int) int {
	if position < 0 {
		return 0
	}
	if c.scrollLimit > 0 && position > c.scrollLimit {
		return c.scrollLimit
	}
	return position
}

func (c *Controller) record(name string, payload analytics.Payload) {
	c.sink.Record(name, payload)
}
