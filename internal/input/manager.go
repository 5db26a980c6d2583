package input

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
	"github.com/Scoutink/3d-cms-sub000/internal/event"
	"github.com/Scoutink/3d-cms-sub000/internal/input/binding"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// Suffixes appended to stream action names for their start and end edges.
const (
	StreamStartSuffix = "-start"
	StreamEndSuffix   = "-end"
)

// Config configures the input manager.
type Config struct {
	// Logger receives dispatch diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger

	// Focus reports text-entry focus; may be nil (never focused).
	Focus FocusQuery

	// Selection is the selection collaborator consulted by conditions;
	// may be nil.
	Selection binding.SelectionQuery

	// DeadZone is the analog magnitude below which values clamp to zero.
	DeadZone float64

	// SmoothingFactor pulls each analog value toward the previous stored
	// value; 0 disables smoothing.
	SmoothingFactor float64

	// Curve is an optional response curve applied after smoothing.
	Curve action.CurveFunc
}

// DefaultConfig returns a configuration with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Logger:          zerolog.Nop(),
		DeadZone:        0.1,
		SmoothingFactor: 0.2,
	}
}

// Manager coordinates sources, contexts, layers, recognizers, and action
// state, routing every normalized event. Construct one per application
// lifetime and pass it by reference; it is not a singleton.
type Manager struct {
	mu sync.RWMutex

	config Config
	logger zerolog.Logger

	sources  map[string]Source
	contexts map[string]*binding.Context
	active   *binding.Context

	layers      *layerStack
	conditions  *binding.Registry
	store       *action.Store
	bus         *event.Bus
	pipeline    *action.Pipeline
	metrics     *Metrics
	hooks       []Hook
	recognizers []Recognizer
	vars        map[string]string

	closed bool
}

// NewManager creates a manager with the canonical layer stack, the
// standard condition predicates, and an empty context set.
func NewManager(config Config) *Manager {
	logger := config.Logger

	m := &Manager{
		config:     config,
		logger:     logger,
		sources:    make(map[string]Source),
		contexts:   make(map[string]*binding.Context),
		layers:     newLayerStack(),
		conditions: binding.NewRegistry(logger),
		store:      action.NewStore(),
		bus:        event.NewBus(logger),
		metrics:    NewMetrics(),
		vars:       make(map[string]string),
	}

	filters := []action.Filter{}
	if config.DeadZone > 0 {
		filters = append(filters, action.DeadZone(config.DeadZone))
	}
	if config.SmoothingFactor > 0 {
		filters = append(filters, action.Smoothing(config.SmoothingFactor))
	}
	if config.Curve != nil {
		filters = append(filters, action.Curve(config.Curve))
	}
	m.pipeline = action.NewPipeline(filters...)

	return m
}

// RegisterSource registers a device adapter under a name and attaches the
// manager's dispatch function to it. Registration has no side effects on
// other state.
func (m *Manager) RegisterSource(name string, src Source) error {
	if src == nil {
		return ErrNilSource
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if _, exists := m.sources[name]; exists {
		m.mu.Unlock()
		return ErrDuplicateSource
	}
	m.sources[name] = src
	m.mu.Unlock()

	if err := src.Attach(func(ev raw.Event) {
		ev.Source = name
		m.HandleInput(name, ev)
	}); err != nil {
		m.mu.Lock()
		delete(m.sources, name)
		m.mu.Unlock()
		return err
	}

	if !src.Available() {
		m.logger.Info().Str("source", name).Msg("source registered but unavailable")
	} else {
		m.logger.Info().Str("source", name).Msg("source registered")
	}
	return nil
}

// RegisterContext registers a binding context. Duplicate names are a
// setup-time error.
func (m *Manager) RegisterContext(ctx *binding.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, exists := m.contexts[ctx.Name()]; exists {
		return ErrDuplicateContext
	}
	m.contexts[ctx.Name()] = ctx
	m.logger.Info().Str("context", ctx.Name()).Msg("context registered")
	return nil
}

// RegisterLayer adds a custom priority layer to the canonical three.
func (m *Manager) RegisterLayer(l Layer) error {
	return m.layers.add(l)
}

// SetContext deactivates the current context (if any), activates the named
// one, and publishes a context-changed event. The switch completes fully
// before returning, so an event arriving afterwards resolves only against
// the new context. Unknown names log and return false.
func (m *Manager) SetContext(name string) bool {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		return false
	}

	next, ok := m.contexts[name]
	if !ok {
		m.mu.Unlock()
		cerr := &ConfigError{Kind: "context", Name: name}
		m.logger.Warn().Str("context", name).Msg(cerr.Error())
		return false
	}

	from := ""
	if m.active != nil {
		from = m.active.Name()
		m.active.Deactivate()
	}
	next.Activate()
	m.active = next
	m.mu.Unlock()

	m.bus.Publish(event.TopicContextChanged, event.ContextChange{From: from, To: name})
	m.logger.Info().Str("from", from).Str("to", name).Msg("context switched")
	return true
}

// ActiveContext returns the name of the active context, empty when none.
func (m *Manager) ActiveContext() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return ""
	}
	return m.active.Name()
}

// HandleInput routes one normalized event: blocking gate, hooks, gesture
// recognizers, binding resolution, trigger. It executes on every hardware
// event and fails soft throughout.
func (m *Manager) HandleInput(source string, ev raw.Event) {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return
	}
	active := m.active
	hooks := m.hooks
	recognizers := m.recognizers
	m.mu.RUnlock()

	m.metrics.RecordEvent(source)

	// Text-entry focus blocks dispatch unconditionally, independent of
	// the layer stack.
	if m.config.Focus != nil && m.config.Focus.IsTextEntryFocused() {
		m.metrics.RecordBlocked()
		return
	}
	if name, blocked := m.layers.blockedBy(); blocked {
		m.metrics.RecordBlocked()
		m.logger.Debug().Str("layer", name).Str("input", ev.Input).Msg("event blocked by layer")
		return
	}

	for _, hook := range hooks {
		if hook.PreEvent(ev) {
			m.metrics.RecordConsumed()
			return
		}
	}

	// Recognizers observe the stream independently of the binding table;
	// derived events re-enter dispatch.
	for _, rec := range recognizers {
		if derived, ok := rec.Feed(ev); ok {
			m.HandleInput(source, derived)
		}
	}

	if active == nil {
		m.logger.Debug().Str("input", ev.Input).Msg("no active context, event dropped")
		return
	}

	env := binding.Env{
		Event:     ev,
		Selection: m.config.Selection,
		Vars:      m.vars,
	}
	bound, ok := active.Resolve(ev, m.conditions, env)
	if !ok {
		m.metrics.RecordUnmatched()
		return
	}

	inst, analog := buildInstance(bound, ev)
	if inst.Name == "" {
		return
	}
	m.trigger(inst, analog)

	for _, hook := range hooks {
		hook.PostAction(inst)
	}
}

// buildInstance derives the action instance (name, state, value) from a
// matched binding and the event's kind and phase.
func buildInstance(b binding.Binding, ev raw.Event) (action.Instance, bool) {
	inst := action.Instance{
		Name:     b.Action,
		Value:    ev.Value,
		Source:   ev.Source,
		Time:     ev.Time,
		Position: ev.Position,
		Delta:    ev.Delta,
		Hit:      ev.Hit,
	}

	switch ev.Kind {
	case raw.KindButton:
		switch ev.Phase {
		case raw.PhasePressed:
			inst.State = action.StatePressed
			inst.Value = 1
		case raw.PhaseReleased:
			inst.State = action.StateReleased
			inst.Value = 0
		default:
			return action.Instance{}, false
		}
		return inst, false

	case raw.KindDiscrete:
		inst.State = action.StateTriggered
		if inst.Value == 0 {
			inst.Value = 1
		}
		return inst, false

	case raw.KindStream:
		switch ev.Phase {
		case raw.PhasePressed:
			inst.Name = b.Action + StreamStartSuffix
			inst.State = action.StatePressed
			inst.Value = 1
			return inst, false
		case raw.PhaseMoved:
			inst.State = action.StateHeld
			return inst, true
		case raw.PhaseReleased:
			inst.Name = b.Action + StreamEndSuffix
			inst.State = action.StateReleased
			inst.Value = 0
			return inst, false
		default:
			return action.Instance{}, false
		}

	case raw.KindAxis:
		if ev.Value == 0 {
			inst.State = action.StateReleased
		} else {
			inst.State = action.StateHeld
		}
		return inst, true

	case raw.KindScroll:
		inst.State = action.StateTriggered
		return inst, true

	default:
		return action.Instance{}, false
	}
}

// TriggerAction runs the filter pipeline, stores the instance, and
// publishes it. Exposed for macro playback and synthetic actions; held
// instances are treated as analog.
func (m *Manager) TriggerAction(inst action.Instance) {
	m.trigger(inst, inst.State == action.StateHeld)
}

// trigger is the single path every action instance takes into the store
// and onto the bus.
func (m *Manager) trigger(inst action.Instance, analog bool) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed || inst.Name == "" {
		return
	}

	if analog {
		prev, _ := m.store.Value(inst.Name)
		inst.Value = m.pipeline.Apply(inst.Name, inst.Value, prev)
	}

	m.store.Set(inst)
	m.metrics.RecordAction()

	m.bus.Publish(event.ActionTopic(inst.Name), inst)
	m.bus.Publish(event.TopicAction, inst)
}

// IsActionPressed reports whether the action's last-known state is pressed
// or held. Unknown names report false, never an error.
func (m *Manager) IsActionPressed(name string) bool {
	return m.store.IsPressed(name)
}

// ActionValue returns the last-known analog value for an action name.
func (m *Manager) ActionValue(name string) (float64, bool) {
	return m.store.Value(name)
}

// ActionState returns the last-known instance for an action name.
func (m *Manager) ActionState(name string) (action.Instance, bool) {
	return m.store.Get(name)
}

// SetLayerActive toggles a layer. Unknown names log and no-op.
func (m *Manager) SetLayerActive(name string, active bool) bool {
	if !m.layers.setActive(name, active) {
		cerr := &ConfigError{Kind: "layer", Name: name}
		m.logger.Warn().Str("layer", name).Msg(cerr.Error())
		return false
	}
	return true
}

// SetLayerBlocking changes a layer's blocking flag. Unknown names log and
// no-op.
func (m *Manager) SetLayerBlocking(name string, blocking bool) bool {
	if !m.layers.setBlocking(name, blocking) {
		cerr := &ConfigError{Kind: "layer", Name: name}
		m.logger.Warn().Str("layer", name).Msg(cerr.Error())
		return false
	}
	return true
}

// Layer returns a copy of the named layer.
func (m *Manager) Layer(name string) (Layer, bool) {
	return m.layers.get(name)
}

// Layers returns every layer in descending priority order.
func (m *Manager) Layers() []Layer {
	return m.layers.snapshot()
}

// On subscribes a handler to a bus topic ("action", "action:<name>",
// "context:changed").
func (m *Manager) On(topic string, handler event.Handler) (*event.Subscription, error) {
	return m.bus.Subscribe(topic, handler)
}

// Off removes a subscription.
func (m *Manager) Off(sub *event.Subscription) error {
	return m.bus.Unsubscribe(sub)
}

// AddHook appends a dispatch hook.
func (m *Manager) AddHook(hook Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook)
}

// RemoveHook removes a dispatch hook.
func (m *Manager) RemoveHook(hook Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, h := range m.hooks {
		if h == hook {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return
		}
	}
}

// AddRecognizer attaches a gesture recognizer to the dispatch stream.
func (m *Manager) AddRecognizer(rec Recognizer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recognizers = append(m.recognizers, rec)
}

// SetVar sets a context variable visible to condition predicates.
func (m *Manager) SetVar(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
}

// Conditions returns the condition registry for custom predicate
// registration.
func (m *Manager) Conditions() *binding.Registry {
	return m.conditions
}

// OverrideFilters replaces the filter chain used for one action name.
func (m *Manager) OverrideFilters(name string, filters ...action.Filter) {
	m.pipeline.Override(name, filters...)
}

// Poll forwards one frame tick to every registered polled source and every
// time-driven recognizer. Call exactly once per host update tick.
func (m *Manager) Poll(now time.Time) {
	m.mu.RLock()
	sources := make([]Source, 0, len(m.sources))
	for _, src := range m.sources {
		sources = append(sources, src)
	}
	recognizers := m.recognizers
	m.mu.RUnlock()

	for _, src := range sources {
		if p, ok := src.(Poller); ok {
			p.Poll(now)
		}
	}
	for _, rec := range recognizers {
		if t, ok := rec.(Ticker); ok {
			if derived, ok := t.Tick(now); ok {
				m.HandleInput(derived.Source, derived)
			}
		}
	}
}

// Metrics returns a snapshot of the dispatch counters.
func (m *Manager) Metrics() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// BusStats returns the bus delivery counters.
func (m *Manager) BusStats() event.Stats {
	return m.bus.Stats()
}

// Close deactivates the context, closes every source, clears action state,
// and shuts the bus down. Idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true

	if m.active != nil {
		m.active.Deactivate()
		m.active = nil
	}
	sources := m.sources
	m.sources = make(map[string]Source)
	m.contexts = make(map[string]*binding.Context)
	m.hooks = nil
	m.recognizers = nil
	m.mu.Unlock()

	var firstErr error
	for name, src := range sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
			m.logger.Warn().Err(err).Str("source", name).Msg("source close failed")
		}
	}

	m.store.Clear()
	m.bus.Close()
	m.logger.Info().Msg("input manager closed")
	return firstErr
}
