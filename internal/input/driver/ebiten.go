package driver

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
	"github.com/Scoutink/3d-cms-sub000/internal/input/source"
)

// ebitenButtons maps ebiten mouse buttons to input identifiers.
var ebitenButtons = map[ebiten.MouseButton]string{
	ebiten.MouseButtonLeft:   raw.InputMouseLeft,
	ebiten.MouseButtonRight:  raw.InputMouseRight,
	ebiten.MouseButtonMiddle: raw.InputMouseMiddle,
}

// Ebiten feeds the device adapters from the ebiten game loop. Call Update
// exactly once per frame from the host's Update method.
type Ebiten struct {
	manager  *input.Manager
	keyboard *source.Keyboard
	pointer  *source.Pointer
	touch    *source.Touch

	keysDown     []ebiten.Key
	keysUp       []ebiten.Key
	touchesDown  []ebiten.TouchID
	touchesLive  []ebiten.TouchID
	activeTouches map[ebiten.TouchID]bool
	lastCursor   raw.Point
	cursorKnown  bool
}

// NewEbiten creates a driver feeding the given adapters. Any adapter may
// be nil to skip that device.
func NewEbiten(manager *input.Manager, keyboard *source.Keyboard, pointer *source.Pointer, touch *source.Touch) *Ebiten {
	return &Ebiten{
		manager:       manager,
		keyboard:      keyboard,
		pointer:       pointer,
		touch:         touch,
		activeTouches: make(map[ebiten.TouchID]bool),
	}
}

// Update polls one frame of host state into the adapters and ticks the
// manager's polled sources.
func (d *Ebiten) Update() {
	mods := d.modifiers()

	if d.keyboard != nil {
		d.keysDown = inpututil.AppendJustPressedKeys(d.keysDown[:0])
		for _, k := range d.keysDown {
			d.keyboard.KeyDown(keyName(k), mods)
		}
		d.keysUp = inpututil.AppendJustReleasedKeys(d.keysUp[:0])
		for _, k := range d.keysUp {
			d.keyboard.KeyUp(keyName(k), mods)
		}
	}

	if d.pointer != nil {
		cx, cy := ebiten.CursorPosition()
		cursor := raw.Pt(float64(cx), float64(cy))

		for btn, name := range ebitenButtons {
			if inpututil.IsMouseButtonJustPressed(btn) {
				d.pointer.ButtonDown(name, cursor, mods)
			}
			if inpututil.IsMouseButtonJustReleased(btn) {
				d.pointer.ButtonUp(name, cursor, mods)
			}
		}
		if !d.cursorKnown || cursor != d.lastCursor {
			d.pointer.Move(cursor, mods)
			d.lastCursor = cursor
			d.cursorKnown = true
		}

		wx, wy := ebiten.Wheel()
		if wx != 0 || wy != 0 {
			d.pointer.Wheel(raw.Pt(wx, wy), mods)
		}
	}

	if d.touch != nil {
		d.touchesDown = inpututil.AppendJustPressedTouchIDs(d.touchesDown[:0])
		for _, id := range d.touchesDown {
			tx, ty := ebiten.TouchPosition(id)
			d.touch.TouchBegin(int64(id), raw.Pt(float64(tx), float64(ty)))
			d.activeTouches[id] = true
		}

		d.touchesLive = ebiten.AppendTouchIDs(d.touchesLive[:0])
		for _, id := range d.touchesLive {
			if d.activeTouches[id] && !inpututil.IsTouchJustReleased(id) {
				tx, ty := ebiten.TouchPosition(id)
				d.touch.TouchMove(int64(id), raw.Pt(float64(tx), float64(ty)))
			}
		}

		for id := range d.activeTouches {
			if inpututil.IsTouchJustReleased(id) {
				tx, ty := inpututil.TouchPositionInPreviousTick(id)
				d.touch.TouchEnd(int64(id), raw.Pt(float64(tx), float64(ty)))
				delete(d.activeTouches, id)
			}
		}
	}

	if d.manager != nil {
		d.manager.Poll(time.Now())
	}
}

// modifiers reads the current modifier key state.
func (d *Ebiten) modifiers() raw.Modifier {
	var mods raw.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods = mods.With(raw.ModShift)
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods = mods.With(raw.ModCtrl)
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods = mods.With(raw.ModAlt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods = mods.With(raw.ModMeta)
	}
	return mods
}

// keyName derives the input identifier for an ebiten key, e.g. "KeyG".
func keyName(k ebiten.Key) string {
	return "Key" + k.String()
}

// GamepadReader reads the first connected standard-layout gamepad through
// ebiten. Implements source.GamepadReader.
type GamepadReader struct {
	ids []ebiten.GamepadID
}

// NewGamepadReader creates an ebiten-backed gamepad reader.
func NewGamepadReader() *GamepadReader {
	return &GamepadReader{}
}

// standardButtons maps input identifiers to standard-layout buttons.
var standardButtons = map[string]ebiten.StandardGamepadButton{
	raw.InputGamepadA: ebiten.StandardGamepadButtonRightBottom,
	raw.InputGamepadB: ebiten.StandardGamepadButtonRightRight,
	raw.InputGamepadX: ebiten.StandardGamepadButtonRightLeft,
	raw.InputGamepadY: ebiten.StandardGamepadButtonRightTop,
}

// standardAxes maps input identifiers to standard-layout axes.
var standardAxes = map[string]ebiten.StandardGamepadAxis{
	raw.InputGamepadLeftStickX:  ebiten.StandardGamepadAxisLeftStickHorizontal,
	raw.InputGamepadLeftStickY:  ebiten.StandardGamepadAxisLeftStickVertical,
	raw.InputGamepadRightStickX: ebiten.StandardGamepadAxisRightStickHorizontal,
	raw.InputGamepadRightStickY: ebiten.StandardGamepadAxisRightStickVertical,
}

// Read snapshots the first standard-layout gamepad. The read itself never
// fails; no connected pad reports Connected false.
func (r *GamepadReader) Read() (source.GamepadState, bool) {
	r.ids = ebiten.AppendGamepadIDs(r.ids[:0])

	for _, id := range r.ids {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		state := source.GamepadState{
			Connected: true,
			Buttons:   make(map[string]bool, len(standardButtons)),
			Axes:      make(map[string]float64, len(standardAxes)),
		}
		for name, btn := range standardButtons {
			state.Buttons[name] = ebiten.IsStandardGamepadButtonPressed(id, btn)
		}
		for name, axis := range standardAxes {
			state.Axes[name] = ebiten.StandardGamepadAxisValue(id, axis)
		}
		return state, true
	}
	return source.GamepadState{}, true
}
