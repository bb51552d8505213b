// Package toast manages transient notifications: lazy surface creation,
// per-entry dismissal timers, two-phase enter/leave animation and hover pause.
package toast

import (
	"sync"
	"time"
)

const (
	DefaultDuration   = 2500 * time.Millisecond
	DefaultLeaveDelay = 200 * time.Millisecond
)

// Surface displays entries. It is created on the first Show and lives as
// long as the Center. Implementations must not call back into the Center.
type Surface interface {
	Attach(el Element)
	SetPhase(id uint64, p Phase)
	// Detach removes the element and reports whether it was attached.
	Detach(id uint64) bool
}

// SurfaceFactory creates the Surface on first use.
type SurfaceFactory func() Surface

// Option configures a Center.
type Option func(*Center)

func WithScheduler(s Scheduler) Option { return func(c *Center) { c.sched = s } }

func WithSurface(f SurfaceFactory) Option { return func(c *Center) { c.factory = f } }

func WithVariant(v Variant) Option { return func(c *Center) { c.variant = v } }

func WithDefaultDuration(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.defaultDuration = d
		}
	}
}

func WithLeaveDelay(d time.Duration) Option {
	return func(c *Center) {
		if d >= 0 {
			c.leaveDelay = d
		}
	}
}

// Center owns every live Entry.
type Center struct {
	mu              sync.Mutex
	sched           Scheduler
	factory         SurfaceFactory
	surface         Surface
	variant         Variant
	defaultDuration time.Duration
	leaveDelay      time.Duration
	nextID          uint64
	entries         []*Entry
}

// NewCenter builds a Center. Without WithSurface entries are tracked but not drawn.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		sched:           RealScheduler(),
		variant:         VariantCard,
		defaultDuration: DefaultDuration,
		leaveDelay:      DefaultLeaveDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.factory == nil {
		c.factory = func() Surface { return discardSurface{} }
	}
	return c
}

// Entry is one notification. Its fields are guarded by the owning Center.
type Entry struct {
	c        *Center
	id       uint64
	message  string
	severity Severity
	duration time.Duration
	state    State
	hovered  bool
	timer    Timer
	// gen invalidates callbacks from timers that were stopped or replaced.
	gen uint64
}

func (e *Entry) ID() uint64 { return e.id }

func (e *Entry) Message() string { return e.message }

func (e *Entry) Severity() Severity { return e.severity }

func (e *Entry) Duration() time.Duration { return e.duration }

func (e *Entry) State() State {
	e.c.mu.Lock()
	defer e.c.mu.Unlock()
	return e.state
}

// Show displays message and returns its entry. A non-positive duration uses
// the default.
func (c *Center) Show(message string, sev Severity, duration time.Duration) *Entry {
	sev = ParseSeverity(string(sev))
	if duration <= 0 {
		duration = c.defaultDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.surface == nil {
		c.surface = c.factory()
	}

	c.nextID++
	e := &Entry{c: c, id: c.nextID, message: message, severity: sev, duration: duration, state: StatePending}
	c.entries = append(c.entries, e)

	c.surface.Attach(newElement(e.id, message, sev, c.variant))
	c.sched.AfterFunc(0, func() { c.enterActive(e) })
	c.armLocked(e)
	return e
}

func (c *Center) Success(message string) *Entry { return c.Show(message, SeveritySuccess, 0) }
func (c *Center) Error(message string) *Entry   { return c.Show(message, SeverityError, 0) }
func (c *Center) Warning(message string) *Entry { return c.Show(message, SeverityWarning, 0) }
func (c *Center) Info(message string) *Entry    { return c.Show(message, SeverityInfo, 0) }

// NotifyError shows an error entry with the default duration.
func (c *Center) NotifyError(message string) { c.Error(message) }

// Hover pauses dismissal. The plain variant ignores hover.
func (c *Center) Hover(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hoverableLocked(e) || e.hovered {
		return
	}
	e.hovered = true
	c.stopTimerLocked(e)
}

// Unhover restarts the full dismissal duration.
func (c *Center) Unhover(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hoverableLocked(e) || !e.hovered {
		return
	}
	e.hovered = false
	c.armLocked(e)
}

// Dismiss starts the leave animation now. Repeated calls are no-ops.
func (c *Center) Dismiss(e *Entry) {
	if e == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.state >= StateDismissing {
		return
	}
	c.beginLeaveLocked(e)
}

// DismissNewest dismisses the most recent entry that is not already leaving.
func (c *Center) DismissNewest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.entries) - 1; i >= 0; i-- {
		if e := c.entries[i]; e.state < StateDismissing {
			c.beginLeaveLocked(e)
			return true
		}
	}
	return false
}

// Entries returns live entries in insertion order.
func (c *Center) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Entry(nil), c.entries...)
}

// Entry returns the live entry with id, or nil once it has been removed.
func (c *Center) Entry(id uint64) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

// Surface returns the display surface, or nil before the first Show.
func (c *Center) Surface() Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface
}

func (c *Center) hoverableLocked(e *Entry) bool {
	if e == nil || c.variant == VariantPlain {
		return false
	}
	return e.state == StatePending || e.state == StateActive
}

func (c *Center) armLocked(e *Entry) {
	c.stopTimerLocked(e)
	gen := e.gen
	e.timer = c.sched.AfterFunc(e.duration, func() { c.expire(e, gen) })
}

func (c *Center) stopTimerLocked(e *Entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
}

func (c *Center) enterActive(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.state != StatePending {
		return
	}
	e.state = StateActive
	c.surface.SetPhase(e.id, PhaseEnterActive)
}

func (c *Center) expire(e *Entry, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.gen != gen || e.state >= StateDismissing {
		return
	}
	e.timer = nil
	c.beginLeaveLocked(e)
}

func (c *Center) beginLeaveLocked(e *Entry) {
	c.stopTimerLocked(e)
	e.state = StateDismissing
	c.surface.SetPhase(e.id, PhaseLeave)
	c.sched.AfterFunc(0, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e.state == StateDismissing {
			c.surface.SetPhase(e.id, PhaseLeaveActive)
		}
	})
	c.sched.AfterFunc(c.leaveDelay, func() { c.remove(e) })
}

func (c *Center) remove(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.state == StateRemoved {
		return
	}
	e.state = StateRemoved
	c.surface.Detach(e.id)
	for i, other := range c.entries {
		if other == e {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
}

type discardSurface struct{}

func (discardSurface) Attach(Element)         {}
func (discardSurface) SetPhase(uint64, Phase) {}
func (discardSurface) Detach(uint64) bool     { return true }
