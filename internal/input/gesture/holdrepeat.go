package gesture

import (
	"sync"
	"time"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// Hold-repeat defaults.
const (
	DefaultRepeatInitialDelay = 400 * time.Millisecond
	DefaultRepeatInterval     = 100 * time.Millisecond
)

// HoldRepeat synthesizes discrete repeat events while a watched button is
// held: nothing until the initial delay elapses, then one repeat per
// interval. The manager's poll tick drives the timing via Tick.
type HoldRepeat struct {
	mu sync.Mutex

	watch        string
	initialDelay time.Duration
	interval     time.Duration

	held      bool
	pressedAt time.Time
	lastEmit  time.Time
	repeating bool
}

// NewHoldRepeat creates a recognizer repeating the watch input while held.
// The synthesized input id is the watched id with a "Repeat" suffix.
func NewHoldRepeat(watch string, initialDelay, interval time.Duration) *HoldRepeat {
	if initialDelay <= 0 {
		initialDelay = DefaultRepeatInitialDelay
	}
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	return &HoldRepeat{
		watch:        watch,
		initialDelay: initialDelay,
		interval:     interval,
	}
}

// Feed tracks press and release edges of the watched input. It never
// emits from the event stream itself; repeats come from Tick.
func (h *HoldRepeat) Feed(ev raw.Event) (raw.Event, bool) {
	if ev.Input != h.watch || ev.Kind != raw.KindButton {
		return raw.Event{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Phase {
	case raw.PhasePressed:
		h.held = true
		h.pressedAt = ev.Time
		h.repeating = false
	case raw.PhaseReleased:
		h.held = false
		h.repeating = false
	}
	return raw.Event{}, false
}

// Tick advances the repeat clock, returning a synthesized repeat event
// when one is due.
func (h *HoldRepeat) Tick(now time.Time) (raw.Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.held {
		return raw.Event{}, false
	}

	if !h.repeating {
		if now.Sub(h.pressedAt) < h.initialDelay {
			return raw.Event{}, false
		}
		h.repeating = true
		h.lastEmit = now
		return h.repeatEvent(now), true
	}

	if now.Sub(h.lastEmit) < h.interval {
		return raw.Event{}, false
	}
	h.lastEmit = now
	return h.repeatEvent(now), true
}

func (h *HoldRepeat) repeatEvent(now time.Time) raw.Event {
	return raw.Event{
		Input: h.watch + "Repeat",
		Phase: raw.PhasePressed,
		Kind:  raw.KindDiscrete,
		Value: 1,
		Time:  now,
	}
}

// Reset clears the hold state.
func (h *HoldRepeat) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held = false
	h.repeating = false
}
