package gesture

import (
	"sync"
	"time"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// DoubleTap detection defaults.
const (
	DefaultDoubleTapWindow   = 300 * time.Millisecond
	DefaultDoubleTapRadiusPx = 20.0
)

// DoubleTap recognizes two qualifying events arriving within a time
// window and a spatial radius, emitting a single synthesized event. State
// resets after each emission, so a triple press yields one double plus one
// pending single.
type DoubleTap struct {
	mu sync.Mutex

	// watch is the input id that can pair up, emit the synthesized id.
	watch string
	emit  string

	window time.Duration
	radius float64

	pending    bool
	lastTime   time.Time
	lastPos    raw.Point
	lastHadPos bool
}

// NewDoubleTap creates a recognizer pairing occurrences of the watch input
// into emit events. Non-positive window or radius fall back to defaults.
func NewDoubleTap(watch, emit string, window time.Duration, radiusPx float64) *DoubleTap {
	if window <= 0 {
		window = DefaultDoubleTapWindow
	}
	if radiusPx <= 0 {
		radiusPx = DefaultDoubleTapRadiusPx
	}
	return &DoubleTap{
		watch:  watch,
		emit:   emit,
		window: window,
		radius: radiusPx,
	}
}

// Feed inspects one event. A second qualifying occurrence of the watched
// input within the window and radius returns the synthesized event; any
// other occurrence arms or re-arms the pending state. A drag on the same
// pointer cancels the pending tap.
func (d *DoubleTap) Feed(ev raw.Event) (raw.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ev.Input != d.watch {
		// A competing drag invalidates the pending first tap.
		if d.pending && ev.Kind == raw.KindStream && ev.Phase == raw.PhasePressed {
			d.pending = false
		}
		return raw.Event{}, false
	}

	pos := raw.Point{}
	hasPos := ev.Position != nil
	if hasPos {
		pos = *ev.Position
	}

	if d.pending &&
		ev.Time.Sub(d.lastTime) <= d.window &&
		(!hasPos || !d.lastHadPos || pos.Distance(d.lastPos) <= d.radius) {
		d.pending = false

		out := ev
		out.Input = d.emit
		out.Kind = raw.KindDiscrete
		out.Phase = raw.PhasePressed
		if out.Value == 0 {
			out.Value = 1
		}
		return out, true
	}

	d.pending = true
	d.lastTime = ev.Time
	d.lastPos = pos
	d.lastHadPos = hasPos
	return raw.Event{}, false
}

// Reset clears any pending first tap.
func (d *DoubleTap) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
}
