package source

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// GamepadName is the canonical gamepad source name.
const GamepadName = "gamepad"

// DefaultGamepadPollHz is the default polling rate.
const DefaultGamepadPollHz = 60

// GamepadState is one polled snapshot of a controller.
type GamepadState struct {
	// Connected reports whether a controller is attached.
	Connected bool

	// Buttons maps button input ids to their pressed state.
	Buttons map[string]bool

	// Axes maps axis input ids to raw values in [-1, 1] (triggers [0, 1]).
	Axes map[string]float64
}

// GamepadReader supplies controller snapshots; the host driver implements
// it over the platform gamepad API.
type GamepadReader interface {
	// Read returns the current state and whether the read succeeded. A
	// failed read means the platform gamepad API itself is unavailable.
	Read() (GamepadState, bool)
}

// GamepadConfig configures the gamepad adapter.
type GamepadConfig struct {
	// Logger receives adapter diagnostics.
	Logger zerolog.Logger

	// Reader supplies controller snapshots. Required.
	Reader GamepadReader

	// PollHz caps the polling rate. Defaults to DefaultGamepadPollHz.
	PollHz int
}

// DefaultGamepadConfig returns a configuration with defaults. Reader must
// still be supplied.
func DefaultGamepadConfig() GamepadConfig {
	return GamepadConfig{
		Logger: zerolog.Nop(),
		PollHz: DefaultGamepadPollHz,
	}
}

// Gamepad polls a controller snapshot at a capped rate, diffs it against
// the previous frame for button edges, and forwards axis values on every
// poll. A failed read permanently disables the adapter.
type Gamepad struct {
	mu       sync.Mutex
	config   GamepadConfig
	dispatch raw.Dispatcher
	interval time.Duration
	lastPoll time.Time
	prev     GamepadState
	disabled bool
	closed   bool
}

// NewGamepad creates a gamepad adapter. A nil reader yields an adapter
// that reports unavailable.
func NewGamepad(config GamepadConfig) *Gamepad {
	if config.PollHz <= 0 {
		config.PollHz = DefaultGamepadPollHz
	}
	g := &Gamepad{
		config:   config,
		interval: time.Second / time.Duration(config.PollHz),
	}
	if config.Reader == nil {
		g.disabled = true
		config.Logger.Warn().Str("source", GamepadName).Msg("no gamepad reader, source disabled")
	}
	return g
}

// Name returns the source name.
func (g *Gamepad) Name() string {
	return GamepadName
}

// Attach wires the adapter to the dispatcher.
func (g *Gamepad) Attach(dispatch raw.Dispatcher) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.disabled {
		return &input.SourceUnavailableError{Source: GamepadName, Reason: "gamepad API unavailable"}
	}
	g.dispatch = dispatch
	return nil
}

// Available reports whether the adapter is still polling. It turns false
// permanently after a failed read.
func (g *Gamepad) Available() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.disabled && !g.closed
}

// Poll reads one controller snapshot if the rate cap allows, emitting
// button press/release edges and current axis values. Implements
// input.Poller.
func (g *Gamepad) Poll(now time.Time) {
	g.mu.Lock()
	if g.closed || g.disabled || g.dispatch == nil {
		g.mu.Unlock()
		return
	}
	if !g.lastPoll.IsZero() && now.Sub(g.lastPoll) < g.interval {
		g.mu.Unlock()
		return
	}
	g.lastPoll = now

	state, ok := g.config.Reader.Read()
	if !ok {
		g.disabled = true
		g.mu.Unlock()
		g.config.Logger.Warn().Str("source", GamepadName).Msg("gamepad read failed, source disabled")
		return
	}

	var emissions []raw.Event
	if state.Connected {
		emissions = g.diffLocked(state, now)
	} else if g.prev.Connected {
		// Release everything the disconnected pad was holding.
		for button, pressed := range g.prev.Buttons {
			if pressed {
				emissions = append(emissions, raw.Event{
					Input: button,
					Phase: raw.PhaseReleased,
					Kind:  raw.KindButton,
					Time:  now,
				})
			}
		}
		for axis, value := range g.prev.Axes {
			if value != 0 {
				emissions = append(emissions, raw.Event{
					Input: axis,
					Phase: raw.PhaseMoved,
					Kind:  raw.KindAxis,
					Time:  now,
				})
			}
		}
	}
	g.prev = state
	dispatch := g.dispatch
	g.mu.Unlock()

	for _, ev := range emissions {
		dispatch(ev)
	}
}

// diffLocked compares the new snapshot against the previous frame. Caller
// holds the mutex.
func (g *Gamepad) diffLocked(state GamepadState, now time.Time) []raw.Event {
	var emissions []raw.Event

	for button, pressed := range state.Buttons {
		if pressed && !g.prev.Buttons[button] {
			emissions = append(emissions, raw.Event{
				Input: button,
				Phase: raw.PhasePressed,
				Kind:  raw.KindButton,
				Value: 1,
				Time:  now,
			})
		}
	}
	for button, pressed := range g.prev.Buttons {
		if pressed && !state.Buttons[button] {
			emissions = append(emissions, raw.Event{
				Input: button,
				Phase: raw.PhaseReleased,
				Kind:  raw.KindButton,
				Time:  now,
			})
		}
	}

	// Axis values forward raw every poll; dead-zone filtering happens in
	// the action pipeline. A released axis emits one zero sample.
	for axis, value := range state.Axes {
		if value != 0 || g.prev.Axes[axis] != 0 {
			emissions = append(emissions, raw.Event{
				Input: axis,
				Phase: raw.PhaseMoved,
				Kind:  raw.KindAxis,
				Value: value,
				Time:  now,
			})
		}
	}
	return emissions
}

// Connected reports whether the last poll saw an attached controller.
func (g *Gamepad) Connected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prev.Connected
}

// Close detaches the adapter. Idempotent.
func (g *Gamepad) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	g.dispatch = nil
	g.prev = GamepadState{}
	return nil
}
