package input

import (
	"time"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// HitTester is the scene hit-test collaborator. It is invoked on pointer
// press (and move as needed) and treated as opaque: the manager never owns
// scene state.
type HitTester interface {
	// Pick hit-tests a screen position against the scene.
	Pick(p raw.Point) raw.HitInfo
}

// FocusQuery reports whether a text-entry control currently holds input
// focus. Focus blocks dispatch unconditionally, independent of the layer
// stack.
type FocusQuery interface {
	IsTextEntryFocused() bool
}

// Source is one device adapter in the closed adapter set. A source
// normalizes raw hardware callbacks into raw.Events and forwards them to
// the dispatcher it was attached with; it owns its private tracking state,
// mutated only on the dispatch thread.
type Source interface {
	// Name returns the stable source name ("keyboard", "pointer", ...).
	Name() string

	// Attach wires the source to the manager's dispatch function.
	Attach(dispatch raw.Dispatcher) error

	// Available reports whether the underlying hardware API exists. An
	// unavailable source stays registered but emits nothing.
	Available() bool

	// Close releases every listener the source registered. Must be
	// idempotent.
	Close() error
}

// Poller is implemented by sources that must be sampled once per host
// frame instead of receiving push callbacks (gamepads). The host driver
// calls Poll exactly once per update tick so a frame's state is stable for
// the whole frame.
type Poller interface {
	Poll(now time.Time)
}

// Recognizer is a stateful gesture classifier layered on top of the
// normalized event stream. Feed returns a derived event (double-tap, hold
// repeat) when the gesture completes; derived events re-enter dispatch.
type Recognizer interface {
	// Feed observes one event and optionally emits a derived one.
	Feed(ev raw.Event) (raw.Event, bool)

	// Reset clears recognizer state, e.g. when a rival classification
	// consumes the same press-release cycle.
	Reset()
}

// Ticker is implemented by recognizers whose output depends on elapsed
// time rather than incoming events (hold-to-repeat). The manager ticks
// them on every Poll; emitted events re-enter dispatch.
type Ticker interface {
	Tick(now time.Time) (raw.Event, bool)
}

// Hook intercepts dispatch before binding resolution and after action
// publication.
type Hook interface {
	// PreEvent runs before an event is resolved. Returning true consumes
	// the event and stops further processing.
	PreEvent(ev raw.Event) bool

	// PostAction runs after an action instance has been stored and
	// published.
	PostAction(inst action.Instance)
}
