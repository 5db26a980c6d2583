package source

import (
	"testing"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func TestKeyboardPressRelease(t *testing.T) {
	rec := &recorder{}
	kb := NewKeyboard(DefaultKeyboardConfig())
	if err := kb.Attach(rec.dispatch); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	kb.KeyDown("KeyG", raw.ModNone)
	kb.KeyUp("KeyG", raw.ModNone)

	if len(rec.events) != 2 {
		t.Fatalf("got %d events", len(rec.events))
	}
	if rec.events[0].Phase != raw.PhasePressed || rec.events[0].Value != 1 {
		t.Errorf("press = %+v", rec.events[0])
	}
	if rec.events[1].Phase != raw.PhaseReleased || rec.events[1].Value != 0 {
		t.Errorf("release = %+v", rec.events[1])
	}
}

func TestKeyboardAutoRepeatAbsorbed(t *testing.T) {
	rec := &recorder{}
	kb := NewKeyboard(DefaultKeyboardConfig())
	kb.Attach(rec.dispatch)

	// Platform auto-repeat delivers repeated downs for a held key.
	kb.KeyDown("KeyG", raw.ModNone)
	kb.KeyDown("KeyG", raw.ModNone)
	kb.KeyDown("KeyG", raw.ModNone)

	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1", len(rec.events))
	}
	if !kb.IsPressed("KeyG") {
		t.Error("key must report pressed")
	}
}

func TestKeyboardOrphanReleaseAbsorbed(t *testing.T) {
	rec := &recorder{}
	kb := NewKeyboard(DefaultKeyboardConfig())
	kb.Attach(rec.dispatch)

	kb.KeyUp("KeyG", raw.ModNone)
	if len(rec.events) != 0 {
		t.Fatalf("got %d events, want 0", len(rec.events))
	}
}

func TestKeyboardModifiersCarried(t *testing.T) {
	rec := &recorder{}
	kb := NewKeyboard(DefaultKeyboardConfig())
	kb.Attach(rec.dispatch)

	kb.KeyDown("KeyS", raw.ModCtrl|raw.ModShift)
	if got := rec.last().Modifiers; got != raw.ModCtrl|raw.ModShift {
		t.Errorf("modifiers = %v", got)
	}
}

func TestKeyboardReset(t *testing.T) {
	rec := &recorder{}
	kb := NewKeyboard(DefaultKeyboardConfig())
	kb.Attach(rec.dispatch)

	kb.KeyDown("KeyA", raw.ModNone)
	kb.KeyDown("KeyB", raw.ModNone)
	kb.Reset()

	if kb.IsPressed("KeyA") || len(kb.PressedKeys()) != 0 {
		t.Error("Reset must clear the pressed set")
	}
	// Reset emits no synthetic releases.
	if len(rec.events) != 2 {
		t.Errorf("got %d events, want 2", len(rec.events))
	}
	// The next down for a cleared key emits again.
	kb.KeyDown("KeyA", raw.ModNone)
	if len(rec.events) != 3 {
		t.Errorf("got %d events, want 3", len(rec.events))
	}
}

func TestKeyboardSuppressDefault(t *testing.T) {
	focus := &fixedFocus{}
	config := DefaultKeyboardConfig()
	config.Focus = focus
	kb := NewKeyboard(config)

	if !kb.SuppressDefault() {
		t.Error("suppress while no text control is focused")
	}
	focus.focused = true
	if kb.SuppressDefault() {
		t.Error("do not suppress while a text control is focused")
	}
}

func TestKeyboardClose(t *testing.T) {
	rec := &recorder{}
	kb := NewKeyboard(DefaultKeyboardConfig())
	kb.Attach(rec.dispatch)

	if err := kb.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := kb.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	kb.KeyDown("KeyG", raw.ModNone)
	if len(rec.events) != 0 {
		t.Error("closed adapter must not emit")
	}
}

// fixedFocus reports a fixed text-entry focus state.
type fixedFocus struct {
	focused bool
}

func (f *fixedFocus) IsTextEntryFocused() bool { return f.focused }
