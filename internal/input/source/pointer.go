package source

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// PointerName is the canonical pointer source name.
const PointerName = "pointer"

// DefaultDragThresholdPx is the cumulative displacement required to
// classify a press-release cycle as a drag rather than a click.
const DefaultDragThresholdPx = 5.0

// PointerConfig configures the pointer adapter.
type PointerConfig struct {
	// Logger receives adapter diagnostics.
	Logger zerolog.Logger

	// HitTester is run at button press; the result rides on the press,
	// click, and drag events of that cycle. May be nil.
	HitTester input.HitTester

	// DragThresholdPx is the click-vs-drag displacement threshold.
	DragThresholdPx float64

	// Clock supplies event timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultPointerConfig returns a configuration with defaults.
func DefaultPointerConfig() PointerConfig {
	return PointerConfig{
		Logger:          zerolog.Nop(),
		DragThresholdPx: DefaultDragThresholdPx,
		Clock:           time.Now,
	}
}

// buttonState is the per-button click-vs-drag state machine: Idle →
// Pressed → (Dragging) → Idle. isDragging is monotonic within one cycle.
type buttonState struct {
	pressed    bool
	dragging   bool
	start      raw.Point
	current    raw.Point
	startTime  time.Time
	hit        *raw.HitInfo
	pressedMod raw.Modifier
}

// Pointer is the mouse-equivalent adapter. Each button owns an
// independent click-vs-drag machine; sub-threshold movement while pressed
// is absorbed (hand tremor), wheel scroll is stateless.
type Pointer struct {
	mu       sync.Mutex
	config   PointerConfig
	dispatch raw.Dispatcher
	buttons  map[string]*buttonState
	closed   bool
}

// NewPointer creates a pointer adapter.
func NewPointer(config PointerConfig) *Pointer {
	if config.DragThresholdPx <= 0 {
		config.DragThresholdPx = DefaultDragThresholdPx
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Pointer{
		config:  config,
		buttons: make(map[string]*buttonState),
	}
}

// Name returns the source name.
func (p *Pointer) Name() string {
	return PointerName
}

// Attach wires the adapter to the dispatcher.
func (p *Pointer) Attach(dispatch raw.Dispatcher) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dispatch = dispatch
	return nil
}

// Available always reports true.
func (p *Pointer) Available() bool {
	return true
}

// ButtonDown starts a press cycle: records start position and time, runs
// the scene hit-test, and emits the plain button pressed event carrying
// the result.
func (p *Pointer) ButtonDown(button string, pos raw.Point, mods raw.Modifier) {
	p.mu.Lock()
	if p.closed || p.dispatch == nil {
		p.mu.Unlock()
		return
	}

	state := p.buttons[button]
	if state == nil {
		state = &buttonState{}
		p.buttons[button] = state
	}
	if state.pressed {
		p.mu.Unlock()
		return
	}

	now := p.config.Clock()
	state.pressed = true
	state.dragging = false
	state.start = pos
	state.current = pos
	state.startTime = now
	state.pressedMod = mods
	state.hit = nil
	if p.config.HitTester != nil {
		hit := p.config.HitTester.Pick(pos)
		state.hit = &hit
	}
	dispatch := p.dispatch
	hit := state.hit
	p.mu.Unlock()

	ev := raw.Event{
		Input:     button,
		Phase:     raw.PhasePressed,
		Kind:      raw.KindButton,
		Value:     1,
		Modifiers: mods,
		Time:      now,
	}
	ev.Position = &pos
	ev.Hit = hit
	dispatch(ev)
}

// Move advances every pressed button's machine. Crossing the drag
// threshold emits the drag-start edge; further movement emits drag moves
// with deltas. Sub-threshold movement is absorbed. With no button held the
// move forwards as a hover event.
func (p *Pointer) Move(pos raw.Point, mods raw.Modifier) {
	p.mu.Lock()
	if p.closed || p.dispatch == nil {
		p.mu.Unlock()
		return
	}
	dispatch := p.dispatch
	now := p.config.Clock()

	var emissions []raw.Event
	anyPressed := false

	for button, state := range p.buttons {
		if !state.pressed {
			continue
		}
		anyPressed = true

		prev := state.current
		state.current = pos

		if !state.dragging {
			if pos.Distance(state.start) < p.config.DragThresholdPx {
				// Absorb tremor below the threshold.
				continue
			}
			state.dragging = true

			startEv := raw.Event{
				Input:     dragInput(button),
				Phase:     raw.PhasePressed,
				Kind:      raw.KindStream,
				Value:     1,
				Modifiers: mods,
				Time:      now,
				Hit:       state.hit,
			}
			start := state.start
			startEv.Position = &start
			emissions = append(emissions, startEv)
			// The first move spans start to current.
			prev = state.start
		}

		delta := pos.Sub(prev)
		moveEv := raw.Event{
			Input:     dragInput(button),
			Phase:     raw.PhaseMoved,
			Kind:      raw.KindStream,
			Value:     delta.Magnitude(),
			Modifiers: mods,
			Time:      now,
			Hit:       state.hit,
		}
		moveEv.Position = &pos
		moveEv.Delta = &delta
		emissions = append(emissions, moveEv)
	}
	p.mu.Unlock()

	if !anyPressed {
		hover := raw.Event{
			Input:     raw.InputPointerMove,
			Phase:     raw.PhaseMoved,
			Kind:      raw.KindDiscrete,
			Modifiers: mods,
			Time:      now,
		}
		hover.Position = &pos
		dispatch(hover)
		return
	}

	for _, ev := range emissions {
		dispatch(ev)
	}
}

// ButtonUp ends a press cycle: a cycle that never entered Dragging
// classifies as a click carrying the press hit-test result; a dragging
// cycle emits the drag-end edge. Either way the machine returns to Idle.
func (p *Pointer) ButtonUp(button string, pos raw.Point, mods raw.Modifier) {
	p.mu.Lock()
	if p.closed || p.dispatch == nil {
		p.mu.Unlock()
		return
	}

	state := p.buttons[button]
	if state == nil || !state.pressed {
		p.mu.Unlock()
		return
	}

	now := p.config.Clock()
	wasDragging := state.dragging
	hit := state.hit
	state.pressed = false
	state.dragging = false
	state.hit = nil
	dispatch := p.dispatch
	p.mu.Unlock()

	release := raw.Event{
		Input:     button,
		Phase:     raw.PhaseReleased,
		Kind:      raw.KindButton,
		Modifiers: mods,
		Time:      now,
	}
	release.Position = &pos
	dispatch(release)

	if wasDragging {
		end := raw.Event{
			Input:     dragInput(button),
			Phase:     raw.PhaseReleased,
			Kind:      raw.KindStream,
			Modifiers: mods,
			Time:      now,
			Hit:       hit,
		}
		end.Position = &pos
		dispatch(end)
		return
	}

	click := raw.Event{
		Input:     clickInput(button),
		Phase:     raw.PhasePressed,
		Kind:      raw.KindDiscrete,
		Value:     1,
		Modifiers: mods,
		Time:      now,
		Hit:       hit,
	}
	click.Position = &pos
	dispatch(click)
}

// Wheel emits a stateless scroll step. Value is the dominant vertical
// delta; the full 2D delta rides along.
func (p *Pointer) Wheel(delta raw.Point, mods raw.Modifier) {
	p.mu.Lock()
	if p.closed || p.dispatch == nil {
		p.mu.Unlock()
		return
	}
	dispatch := p.dispatch
	now := p.config.Clock()
	p.mu.Unlock()

	ev := raw.Event{
		Input:     raw.InputWheel,
		Phase:     raw.PhaseScrolled,
		Kind:      raw.KindScroll,
		Value:     delta.Y,
		Modifiers: mods,
		Time:      now,
	}
	ev.Delta = &delta
	dispatch(ev)
}

// IsDragging reports whether the button's current cycle has entered
// Dragging.
func (p *Pointer) IsDragging(button string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.buttons[button]
	return state != nil && state.dragging
}

// Close detaches the adapter and drops all tracking state. Idempotent.
func (p *Pointer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.dispatch = nil
	p.buttons = make(map[string]*buttonState)
	return nil
}

// clickInput derives the click classification input id for a button.
func clickInput(button string) string {
	return button + "Click"
}

// dragInput derives the drag stream input id for a button.
func dragInput(button string) string {
	return button + "Drag"
}
