package script

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/binding"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(zerolog.Nop())
	t.Cleanup(e.Close)
	return e
}

func TestEngineEvaluate(t *testing.T) {
	e := newTestEngine(t)

	const code = `
function evaluate(env)
  return env.value > 0.5 and not env.background
end
`
	if err := e.RegisterCondition("strong-press", code); err != nil {
		t.Fatalf("RegisterCondition: %v", err)
	}

	hit := raw.Event{Input: "VRLeftTrigger", Value: 0.9}.WithHit(raw.HitInfo{Hit: true})
	if !e.Evaluate("strong-press", binding.Env{Event: hit}) {
		t.Error("strong press on object must evaluate true")
	}

	weak := raw.Event{Input: "VRLeftTrigger", Value: 0.2}.WithHit(raw.HitInfo{Hit: true})
	if e.Evaluate("strong-press", binding.Env{Event: weak}) {
		t.Error("weak press must evaluate false")
	}

	background := raw.Event{Input: "VRLeftTrigger", Value: 0.9}
	if e.Evaluate("strong-press", binding.Env{Event: background}) {
		t.Error("background press must evaluate false")
	}
}

func TestEngineEnvFields(t *testing.T) {
	e := newTestEngine(t)

	const code = `
function evaluate(env)
  return env.input == "KeyS"
    and env.modifiers[1] == "Ctrl"
    and env.hit.target == "crate"
    and env.vars.tool == "move"
end
`
	if err := e.RegisterCondition("env-probe", code); err != nil {
		t.Fatalf("RegisterCondition: %v", err)
	}

	ev := raw.Event{Input: "KeyS", Modifiers: raw.ModCtrl}.WithHit(
		raw.HitInfo{Hit: true, TargetID: "crate"},
	)
	env := binding.Env{Event: ev, Vars: map[string]string{"tool": "move"}}
	if !e.Evaluate("env-probe", env) {
		t.Error("all environment fields must be visible to the chunk")
	}

	env.Vars["tool"] = "scale"
	if e.Evaluate("env-probe", env) {
		t.Error("changed var must flip the result")
	}
}

func TestEngineSelection(t *testing.T) {
	e := newTestEngine(t)

	const code = `
function evaluate(env)
  return env.selection ~= nil and env.selection.active
end
`
	if err := e.RegisterCondition("sel", code); err != nil {
		t.Fatal(err)
	}

	if e.Evaluate("sel", binding.Env{}) {
		t.Error("nil selection collaborator must evaluate false")
	}
	if !e.Evaluate("sel", binding.Env{Selection: listSelection{"crate"}}) {
		t.Error("active selection must evaluate true")
	}
}

func TestEngineRegisterErrors(t *testing.T) {
	e := newTestEngine(t)

	if err := e.RegisterCondition("", "function evaluate(env) return true end"); err != ErrEmptyName {
		t.Errorf("empty name = %v", err)
	}
	if err := e.RegisterCondition("broken", "function evaluate("); err == nil {
		t.Error("syntax error must surface at registration")
	}
	if err := e.RegisterCondition("missing", "x = 1"); !errors.Is(err, ErrNoEvaluate) {
		t.Errorf("missing evaluate = %v", err)
	}
	if err := e.RegisterCondition("wrong-type", "evaluate = 42"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("non-function evaluate = %v", err)
	}

	// The previous chunk's evaluate must not leak into the next.
	if err := e.RegisterCondition("first", "function evaluate(env) return true end"); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterCondition("leaked", "y = 2"); !errors.Is(err, ErrNoEvaluate) {
		t.Errorf("stale evaluate leaked: %v", err)
	}
}

func TestEngineRuntimeErrorEvaluatesFalse(t *testing.T) {
	e := newTestEngine(t)

	const code = `
function evaluate(env)
  error("boom")
end
`
	if err := e.RegisterCondition("explosive", code); err != nil {
		t.Fatalf("RegisterCondition: %v", err)
	}
	if e.Evaluate("explosive", binding.Env{}) {
		t.Error("runtime error must evaluate false, not panic")
	}
	// The engine stays usable afterwards.
	if err := e.RegisterCondition("ok", "function evaluate(env) return true end"); err != nil {
		t.Fatalf("engine unusable after runtime error: %v", err)
	}
	if !e.Evaluate("ok", binding.Env{}) {
		t.Error("later conditions must still run")
	}
}

func TestEngineUnknownCondition(t *testing.T) {
	e := newTestEngine(t)
	if e.Evaluate("never-registered", binding.Env{}) {
		t.Error("unknown condition must evaluate false")
	}
}

func TestEngineBind(t *testing.T) {
	e := newTestEngine(t)

	const code = `
function evaluate(env)
  return env.value >= 1
end
`
	if err := e.RegisterCondition("full-value", code); err != nil {
		t.Fatal(err)
	}

	reg := binding.NewRegistry(zerolog.Nop())
	if err := e.Bind(reg); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	env := binding.Env{Event: raw.Event{Value: 1}}
	if !reg.Evaluate("full-value", env) {
		t.Error("bound condition must run through the registry")
	}
	env.Event.Value = 0.5
	if reg.Evaluate("full-value", env) {
		t.Error("bound condition must see the environment")
	}
}

func TestEngineSandbox(t *testing.T) {
	e := newTestEngine(t)

	// io and os are not opened; touching them is a compile-time nil index
	// at registration run time.
	if err := e.RegisterCondition("escape", `evaluate = io.open`); err == nil {
		t.Error("io must be unavailable")
	}
}

func TestEngineClose(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	if err := e.RegisterCondition("x", "function evaluate(env) return true end"); err != nil {
		t.Fatal(err)
	}

	e.Close()
	e.Close()

	if e.Evaluate("x", binding.Env{}) {
		t.Error("closed engine must evaluate false")
	}
	if err := e.RegisterCondition("y", "function evaluate(env) return true end"); err != ErrClosed {
		t.Errorf("register after close = %v", err)
	}
}

// listSelection is a fixed selection collaborator.
type listSelection []string

func (s listSelection) HasActiveSelection() bool   { return len(s) > 0 }
func (s listSelection) CurrentSelection() []string { return s }
