package binding

import (
	"fmt"
	"strings"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// PhaseSelector restricts a binding to one lifecycle phase. The zero value
// admits every phase.
type PhaseSelector uint8

const (
	// PhaseAny admits events in any phase.
	PhaseAny PhaseSelector = iota
	// PhasePressed admits only pressed events.
	PhasePressed
	// PhaseReleased admits only released events.
	PhaseReleased
	// PhaseMoved admits only moved events.
	PhaseMoved
	// PhaseScrolled admits only scrolled events.
	PhaseScrolled
)

// String returns the selector name.
func (s PhaseSelector) String() string {
	switch s {
	case PhaseAny:
		return "any"
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

// Admits reports whether the selector accepts the given phase.
func (s PhaseSelector) Admits(p raw.Phase) bool {
	switch s {
	case PhaseAny:
		return true
	case PhasePressed:
		return p == raw.PhasePressed
	case PhaseReleased:
		return p == raw.PhaseReleased
	case PhaseMoved:
		return p == raw.PhaseMoved
	case PhaseScrolled:
		return p == raw.PhaseScrolled
	default:
		return false
	}
}

// ParsePhase parses a phase selector name. Empty input means PhaseAny.
func ParsePhase(s string) (PhaseSelector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return PhaseAny, nil
	case "pressed":
		return PhasePressed, nil
	case "released":
		return PhaseReleased, nil
	case "moved":
		return PhaseMoved, nil
	case "scrolled":
		return PhaseScrolled, nil
	default:
		return PhaseAny, fmt.Errorf("unknown phase selector %q", s)
	}
}

// Binding is a single input-to-action mapping rule. Bindings are immutable
// at runtime except through the explicit rebinding operations on Context.
type Binding struct {
	// Input is the normalized input identifier this rule matches
	// ("KeyG", "MouseLeftClick", "Tap").
	Input string

	// Action is the action name produced on a match.
	Action string

	// Modifiers are the modifier flags this rule requires. Matching is a
	// subset check unless RequireModifiers is set.
	Modifiers raw.Modifier

	// RequireModifiers demands the event's modifiers equal Modifiers
	// exactly instead of merely containing them.
	RequireModifiers bool

	// Condition is a predicate expression that must evaluate true for
	// this rule to match; empty means unconditional.
	Condition string

	// Phase restricts the rule to one lifecycle phase.
	Phase PhaseSelector
}

// NewBinding creates an unconditional binding for any phase.
func NewBinding(input, actionName string) Binding {
	return Binding{
		Input:  input,
		Action: actionName,
	}
}

// WithModifiers sets the required modifier flags.
func (b Binding) WithModifiers(mods raw.Modifier) Binding {
	b.Modifiers = mods
	return b
}

// WithExactModifiers sets modifier flags that must match exactly.
func (b Binding) WithExactModifiers(mods raw.Modifier) Binding {
	b.Modifiers = mods
	b.RequireModifiers = true
	return b
}

// WithCondition sets the condition expression.
func (b Binding) WithCondition(expr string) Binding {
	b.Condition = expr
	return b
}

// WithPhase sets the phase selector.
func (b Binding) WithPhase(phase PhaseSelector) Binding {
	b.Phase = phase
	return b
}

// Matches reports whether the binding matches the event under the given
// condition evaluator and environment.
func (b Binding) Matches(ev raw.Event, eval Evaluator, env Env) bool {
	if b.Input != ev.Input {
		return false
	}
	if !b.Phase.Admits(ev.Phase) {
		return false
	}
	if b.RequireModifiers {
		if ev.Modifiers != b.Modifiers {
			return false
		}
	} else if !ev.Modifiers.Contains(b.Modifiers) {
		return false
	}
	if b.Condition != "" {
		if eval == nil || !eval.Evaluate(b.Condition, env) {
			return false
		}
	}
	return true
}

// String returns a compact description like "Ctrl+MouseLeftDrag -> pan".
func (b Binding) String() string {
	input := b.Input
	if !b.Modifiers.IsEmpty() {
		input = b.Modifiers.String() + "+" + input
	}
	return input + " -> " + b.Action
}
