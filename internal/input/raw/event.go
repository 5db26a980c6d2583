package raw

import "time"

// Phase describes where in its lifecycle an input event sits.
type Phase uint8

const (
	// PhasePressed marks the start of a press, drag stream, or discrete
	// occurrence.
	PhasePressed Phase = iota

	// PhaseReleased marks the end of a press or stream.
	PhaseReleased

	// PhaseMoved marks a positional or analog update.
	PhaseMoved

	// PhaseScrolled marks a wheel or scroll step.
	PhaseScrolled
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseReleased:
		return "released"
	case PhaseMoved:
		return "moved"
	case PhaseScrolled:
		return "scrolled"
	default:
		return "unknown"
	}
}

// Kind classifies how an input's phases map onto action state. Sources set
// it when they emit, so the manager never has to guess whether an input is a
// momentary button, a one-shot classification, or a continuous stream.
type Kind uint8

const (
	// KindButton is a momentary control: pressed then released.
	KindButton Kind = iota

	// KindDiscrete is a one-shot classification (click, tap, swipe); it has
	// no release.
	KindDiscrete

	// KindStream is a continuous interaction with a beginning, updates, and
	// an end (drag, pinch, rotate).
	KindStream

	// KindAxis is an analog control reporting a scalar value each sample.
	KindAxis

	// KindScroll is a stateless scalar step.
	KindScroll
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindDiscrete:
		return "discrete"
	case KindStream:
		return "stream"
	case KindAxis:
		return "axis"
	case KindScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// HitInfo is the result of a scene hit-test run at pointer press.
type HitInfo struct {
	// Hit reports whether anything other than background was under the
	// pointer.
	Hit bool

	// TargetID identifies the picked object; empty on background.
	TargetID string

	// WorldPoint is the picked position in world coordinates.
	WorldPoint [3]float64

	// Distance is the pick ray distance to the target.
	Distance float64
}

// Event is a normalized input event produced by a source adapter.
type Event struct {
	// Source names the adapter that produced the event.
	Source string

	// Input is the stable identifier of the control ("KeyG", "MouseLeft",
	// "Tap", "GamepadLeftX").
	Input string

	// Phase is the lifecycle phase of this event.
	Phase Phase

	// Kind classifies the input's phase model.
	Kind Kind

	// Position is the screen position, when the device has one.
	Position *Point

	// Delta is the displacement since the previous event of the same
	// stream, when meaningful.
	Delta *Point

	// Value carries the analog magnitude for axis, scroll, and stream
	// events; 1 for presses and discrete occurrences, 0 for releases.
	Value float64

	// Modifiers holds the modifier flags active when the event fired.
	Modifiers Modifier

	// Time is when the hardware callback fired.
	Time time.Time

	// Hit is the scene hit-test result attached at press, if any.
	Hit *HitInfo
}

// Dispatcher receives normalized events from a source adapter.
type Dispatcher func(Event)

// At returns a copy of the event with the given position.
func (e Event) At(p Point) Event {
	e.Position = &p
	return e
}

// WithHit returns a copy of the event carrying a hit-test result.
func (e Event) WithHit(h HitInfo) Event {
	e.Hit = &h
	return e
}

// IsBackground reports whether the event's hit-test, if present, found
// nothing but background.
func (e Event) IsBackground() bool {
	return e.Hit == nil || !e.Hit.Hit
}
