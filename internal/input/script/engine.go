package script

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/Scoutink/3d-cms-sub000/internal/input/binding"
)

// Engine errors.
var (
	ErrClosed      = errors.New("script: engine closed")
	ErrEmptyName   = errors.New("script: empty condition name")
	ErrNoEvaluate  = errors.New("script: chunk does not define evaluate")
	ErrNotFunction = errors.New("script: evaluate is not a function")
)

// Engine compiles and runs Lua condition predicates on a single shared
// state. gopher-lua states are not goroutine-safe, so every execution is
// serialized behind the mutex; predicates are expected to be tiny and run
// on the dispatch path.
type Engine struct {
	mu         sync.Mutex
	state      *lua.LState
	logger     zerolog.Logger
	conditions map[string]*lua.LFunction
	closed     bool
}

// NewEngine creates a Lua condition engine. Only the base, table, string,
// and math libraries are opened; io, os, and debug stay out of reach.
func NewEngine(logger zerolog.Logger) *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	return &Engine{
		state:      L,
		logger:     logger,
		conditions: make(map[string]*lua.LFunction),
	}
}

// RegisterCondition compiles a Lua chunk that must define a global
// function evaluate(env) and stores it under the condition name. The
// chunk runs once at registration; compile or run errors surface here,
// never on the dispatch path.
func (e *Engine) RegisterCondition(name, code string) error {
	if name == "" {
		return ErrEmptyName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if err := e.state.DoString(code); err != nil {
		return fmt.Errorf("script: compile %q: %w", name, err)
	}

	val := e.state.GetGlobal("evaluate")
	if val == lua.LNil {
		return fmt.Errorf("%w: %q", ErrNoEvaluate, name)
	}
	fn, ok := val.(*lua.LFunction)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFunction, name)
	}
	// Unset the global so the next chunk cannot silently inherit it.
	e.state.SetGlobal("evaluate", lua.LNil)

	e.conditions[name] = fn
	e.logger.Info().Str("condition", name).Msg("lua condition registered")
	return nil
}

// Names returns the registered scripted condition names.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.conditions))
	for name := range e.conditions {
		names = append(names, name)
	}
	return names
}

// Evaluate runs the named predicate against an environment. Unknown names
// and runtime errors evaluate false; errors are logged, never propagated
// to dispatch.
func (e *Engine) Evaluate(name string, env binding.Env) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	fn, ok := e.conditions[name]
	if !ok {
		e.logger.Debug().Str("condition", name).Msg("unknown lua condition")
		return false
	}

	table := e.envTable(env)
	if err := e.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, table); err != nil {
		e.logger.Warn().Err(err).Str("condition", name).Msg("lua condition failed, evaluating false")
		return false
	}

	ret := e.state.Get(-1)
	e.state.Pop(1)
	return lua.LVAsBool(ret)
}

// envTable builds the Lua view of the evaluation environment. Caller holds
// the mutex.
func (e *Engine) envTable(env binding.Env) *lua.LTable {
	L := e.state
	table := L.NewTable()

	L.SetField(table, "input", lua.LString(env.Event.Input))
	L.SetField(table, "source", lua.LString(env.Event.Source))
	L.SetField(table, "phase", lua.LString(env.Event.Phase.String()))
	L.SetField(table, "value", lua.LNumber(env.Event.Value))
	L.SetField(table, "background", lua.LBool(env.Event.IsBackground()))

	if env.Event.Position != nil {
		pos := L.NewTable()
		L.SetField(pos, "x", lua.LNumber(env.Event.Position.X))
		L.SetField(pos, "y", lua.LNumber(env.Event.Position.Y))
		L.SetField(table, "position", pos)
	}
	if env.Event.Hit != nil {
		hit := L.NewTable()
		L.SetField(hit, "hit", lua.LBool(env.Event.Hit.Hit))
		L.SetField(hit, "target", lua.LString(env.Event.Hit.TargetID))
		L.SetField(hit, "distance", lua.LNumber(env.Event.Hit.Distance))
		L.SetField(table, "hit", hit)
	}

	mods := L.NewTable()
	for _, name := range env.Event.Modifiers.Names() {
		mods.Append(lua.LString(name))
	}
	L.SetField(table, "modifiers", mods)

	if env.Selection != nil {
		sel := L.NewTable()
		L.SetField(sel, "active", lua.LBool(env.Selection.HasActiveSelection()))
		ids := L.NewTable()
		for _, id := range env.Selection.CurrentSelection() {
			ids.Append(lua.LString(id))
		}
		L.SetField(sel, "ids", ids)
		L.SetField(table, "selection", sel)
	}

	vars := L.NewTable()
	for key, value := range env.Vars {
		L.SetField(vars, key, lua.LString(value))
	}
	L.SetField(table, "vars", vars)

	return table
}

// Bind installs every registered scripted condition into a binding
// registry, replacing same-named predicates.
func (e *Engine) Bind(registry *binding.Registry) error {
	for _, name := range e.Names() {
		name := name
		if err := registry.Replace(name, func(env binding.Env) bool {
			return e.Evaluate(name, env)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts the Lua state down. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.conditions = make(map[string]*lua.LFunction)
	e.state.Close()
}
