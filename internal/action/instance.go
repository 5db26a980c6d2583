package action

import (
	"time"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// State describes where an action sits in its lifecycle.
type State uint8

const (
	// StatePressed marks the start of a held action or stream.
	StatePressed State = iota

	// StateHeld marks an action that is still in progress.
	StateHeld

	// StateReleased marks the end of a held action or stream.
	StateReleased

	// StateTriggered marks a one-shot action with no release.
	StateTriggered
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	case StateHeld:
		return "held"
	case StateReleased:
		return "released"
	case StateTriggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// IsActive reports whether the state counts as currently engaged.
func (s State) IsActive() bool {
	return s == StatePressed || s == StateHeld
}

// Instance is a single occurrence of a named action. Instances are what
// subscribers receive and what the store retains per name.
type Instance struct {
	// Name is the action identifier (e.g. "select", "rotate-camera").
	Name string

	// Value is the analog magnitude; 1 for presses and discrete
	// occurrences, 0 for releases.
	Value float64

	// State is the lifecycle state of this occurrence.
	State State

	// Source names the adapter whose event produced the action.
	Source string

	// Time is when the originating hardware callback fired.
	Time time.Time

	// Position is the originating screen position, when the device has one.
	Position *raw.Point

	// Delta is the originating displacement, when meaningful.
	Delta *raw.Point

	// Hit is the scene hit-test result attached at press, if any.
	Hit *raw.HitInfo
}

// WithValue returns a copy of the instance carrying the given value.
func (i Instance) WithValue(v float64) Instance {
	i.Value = v
	return i
}
