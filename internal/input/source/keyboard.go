package source

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// KeyboardName is the canonical keyboard source name.
const KeyboardName = "keyboard"

// KeyboardConfig configures the keyboard adapter.
type KeyboardConfig struct {
	// Logger receives adapter diagnostics.
	Logger zerolog.Logger

	// Focus reports text-entry focus; the adapter stops suppressing the
	// platform's default key behavior while a text control is focused.
	Focus input.FocusQuery

	// Clock supplies event timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultKeyboardConfig returns a configuration with defaults.
func DefaultKeyboardConfig() KeyboardConfig {
	return KeyboardConfig{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
}

// Keyboard tracks the pressed-key set and emits button events with
// modifier flags. Duplicate key-down callbacks (platform auto-repeat) do
// not re-emit.
type Keyboard struct {
	mu       sync.Mutex
	config   KeyboardConfig
	dispatch raw.Dispatcher
	pressed  map[string]bool
	closed   bool
}

// NewKeyboard creates a keyboard adapter.
func NewKeyboard(config KeyboardConfig) *Keyboard {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Keyboard{
		config:  config,
		pressed: make(map[string]bool),
	}
}

// Name returns the source name.
func (k *Keyboard) Name() string {
	return KeyboardName
}

// Attach wires the adapter to the dispatcher.
func (k *Keyboard) Attach(dispatch raw.Dispatcher) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.dispatch = dispatch
	return nil
}

// Available always reports true; keyboards have no absence mode.
func (k *Keyboard) Available() bool {
	return true
}

// KeyDown records a key press and emits a pressed button event. Repeated
// downs for an already-pressed key are absorbed.
func (k *Keyboard) KeyDown(inputID string, mods raw.Modifier) {
	k.mu.Lock()
	if k.closed || k.dispatch == nil || k.pressed[inputID] {
		k.mu.Unlock()
		return
	}
	k.pressed[inputID] = true
	dispatch := k.dispatch
	now := k.config.Clock()
	k.mu.Unlock()

	dispatch(raw.Event{
		Input:     inputID,
		Phase:     raw.PhasePressed,
		Kind:      raw.KindButton,
		Value:     1,
		Modifiers: mods,
		Time:      now,
	})
}

// KeyUp records a key release and emits a released button event. Releases
// for keys never seen down are absorbed.
func (k *Keyboard) KeyUp(inputID string, mods raw.Modifier) {
	k.mu.Lock()
	if k.closed || k.dispatch == nil || !k.pressed[inputID] {
		k.mu.Unlock()
		return
	}
	delete(k.pressed, inputID)
	dispatch := k.dispatch
	now := k.config.Clock()
	k.mu.Unlock()

	dispatch(raw.Event{
		Input:     inputID,
		Phase:     raw.PhaseReleased,
		Kind:      raw.KindButton,
		Modifiers: mods,
		Time:      now,
	})
}

// IsPressed reports whether a key is currently down.
func (k *Keyboard) IsPressed(inputID string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[inputID]
}

// PressedKeys returns the currently pressed key identifiers.
func (k *Keyboard) PressedKeys() []string {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys := make([]string, 0, len(k.pressed))
	for inputID := range k.pressed {
		keys = append(keys, inputID)
	}
	return keys
}

// SuppressDefault reports whether the host should suppress the platform's
// default key behavior: yes, except while a text-entry control has focus.
func (k *Keyboard) SuppressDefault() bool {
	return k.config.Focus == nil || !k.config.Focus.IsTextEntryFocused()
}

// Reset clears the pressed-key set without emitting releases, e.g. on
// window focus loss.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed = make(map[string]bool)
}

// Close detaches the adapter. Idempotent.
func (k *Keyboard) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.closed = true
	k.dispatch = nil
	k.pressed = make(map[string]bool)
	return nil
}
