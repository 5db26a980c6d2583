package binding

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

type stubSelection struct {
	ids []string
}

func (s stubSelection) HasActiveSelection() bool  { return len(s.ids) > 0 }
func (s stubSelection) CurrentSelection() []string { return s.ids }

func TestRegistryEvaluate(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	onObject := Env{Event: raw.Event{}.WithHit(raw.HitInfo{Hit: true})}
	onBackground := Env{Event: raw.Event{}}
	withSelection := Env{Event: raw.Event{}, Selection: stubSelection{ids: []string{"crate"}}}

	tests := []struct {
		name string
		expr string
		env  Env
		want bool
	}{
		{"empty expression is true", "", onBackground, true},
		{"target-is-object on object", CondTargetIsObject, onObject, true},
		{"target-is-object on background", CondTargetIsObject, onBackground, false},
		{"target-is-background on background", CondTargetIsBackground, onBackground, true},
		{"negation", "!" + CondTargetIsObject, onBackground, true},
		{"and both true", CondTargetIsBackground + " && !" + CondTargetIsObject, onBackground, true},
		{"and one false", CondTargetIsObject + " && " + CondTargetIsBackground, onObject, false},
		{"or", CondTargetIsObject + " || " + CondTargetIsBackground, onBackground, true},
		{"selection active", CondHasActiveSelection, withSelection, true},
		{"selection nil collaborator", CondHasActiveSelection, onBackground, false},
		{"unknown name is false", "no-such-condition", onBackground, false},
		{"unknown in or still tries both sides", "no-such-condition || " + CondTargetIsBackground, onBackground, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Evaluate(tt.expr, tt.env); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	if err := reg.Register("custom", func(Env) bool { return true }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("custom", func(Env) bool { return false }); err != ErrDuplicateCondition {
		t.Errorf("duplicate Register = %v, want ErrDuplicateCondition", err)
	}
	if err := reg.Replace("custom", func(Env) bool { return false }); err != nil {
		t.Errorf("Replace: %v", err)
	}
	if reg.Evaluate("custom", Env{}) {
		t.Error("Replace must overwrite the predicate")
	}

	if err := reg.Register("", func(Env) bool { return true }); err != ErrEmptyName {
		t.Errorf("empty name = %v", err)
	}
	if err := reg.Register("nil-fn", nil); err != ErrNilCondition {
		t.Errorf("nil fn = %v", err)
	}
}
