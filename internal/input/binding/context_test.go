package binding

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func TestContextResolveAuthoredOrder(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	ctx := NewContext("view",
		NewBinding("MouseLeftClick", "select").WithCondition(CondTargetIsObject),
		NewBinding("MouseLeftClick", "deselect").WithCondition(CondTargetIsBackground),
		NewBinding("MouseLeftClick", "never-reached"),
	)

	onObject := raw.Event{Input: "MouseLeftClick"}.WithHit(raw.HitInfo{Hit: true, TargetID: "crate"})
	b, ok := ctx.Resolve(onObject, reg, Env{Event: onObject})
	if !ok || b.Action != "select" {
		t.Errorf("on object: got %q, %v", b.Action, ok)
	}

	onBackground := raw.Event{Input: "MouseLeftClick"}
	b, ok = ctx.Resolve(onBackground, reg, Env{Event: onBackground})
	if !ok || b.Action != "deselect" {
		t.Errorf("on background: got %q, %v", b.Action, ok)
	}

	// Exactly one binding resolves; no fallthrough past the first match.
	unbound := raw.Event{Input: "KeyZ"}
	if _, ok := ctx.Resolve(unbound, reg, Env{Event: unbound}); ok {
		t.Error("unbound input must not resolve")
	}
}

func TestContextRebind(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	ctx := NewContext("edit",
		NewBinding("KeyG", "grab"),
		NewBinding("KeyR", "rotate"),
	)

	if changed := ctx.Rebind("grab", "KeyR"); changed != 1 {
		t.Fatalf("Rebind changed %d bindings, want 1", changed)
	}

	// KeyR now resolves to whichever binding comes first in authored
	// order; grab was authored first.
	ev := raw.Event{Input: "KeyR"}
	b, ok := ctx.Resolve(ev, reg, Env{Event: ev})
	if !ok || b.Action != "grab" {
		t.Errorf("after rebind: got %q, %v", b.Action, ok)
	}

	// The old input no longer matches.
	old := raw.Event{Input: "KeyG"}
	if _, ok := ctx.Resolve(old, reg, Env{Event: old}); ok {
		t.Error("old input must not resolve after rebind")
	}

	if changed := ctx.Rebind("no-such-action", "KeyX"); changed != 0 {
		t.Errorf("unknown action rebind changed %d", changed)
	}
}

func TestContextRemove(t *testing.T) {
	ctx := NewContext("view",
		NewBinding("KeyA", "a"),
		NewBinding("KeyB", "b"),
		NewBinding("KeyC", "a"),
	)

	if removed := ctx.Remove("a"); removed != 2 {
		t.Errorf("Remove = %d, want 2", removed)
	}
	if ctx.Len() != 1 {
		t.Errorf("Len = %d, want 1", ctx.Len())
	}
}

func TestContextActivation(t *testing.T) {
	ctx := NewContext("view")
	if ctx.Active() {
		t.Error("new context must be inactive")
	}
	ctx.Activate()
	if !ctx.Active() {
		t.Error("expected active")
	}
	ctx.Deactivate()
	if ctx.Active() {
		t.Error("expected inactive")
	}
}
