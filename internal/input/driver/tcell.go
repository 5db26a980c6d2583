package driver

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
	"github.com/Scoutink/3d-cms-sub000/internal/input/source"
)

// Tcell translates terminal events into adapter calls, for probing and
// headless hosts. Terminals report no key releases, so every key event
// becomes an immediate down-up pair; mouse buttons do report transitions
// and drive the pointer's full click-vs-drag machine.
type Tcell struct {
	keyboard *source.Keyboard
	pointer  *source.Pointer

	lastButtons tcell.ButtonMask
}

// NewTcell creates a terminal driver over the given adapters. Either may
// be nil.
func NewTcell(keyboard *source.Keyboard, pointer *source.Pointer) *Tcell {
	return &Tcell{keyboard: keyboard, pointer: pointer}
}

// tcellButtons maps tcell mouse buttons to input identifiers.
var tcellButtons = map[tcell.ButtonMask]string{
	tcell.Button1: raw.InputMouseLeft,
	tcell.Button2: raw.InputMouseMiddle,
	tcell.Button3: raw.InputMouseRight,
}

// HandleEvent routes one terminal event. Unhandled event types return
// false.
func (d *Tcell) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(e)
	case *tcell.EventMouse:
		return d.handleMouse(e)
	default:
		return false
	}
}

func (d *Tcell) handleKey(e *tcell.EventKey) bool {
	if d.keyboard == nil {
		return false
	}
	name := tcellKeyName(e)
	if name == "" {
		return false
	}
	mods := tcellModifiers(e.Modifiers())

	// Terminals deliver no release, so synthesize the full press cycle.
	d.keyboard.KeyDown(name, mods)
	d.keyboard.KeyUp(name, mods)
	return true
}

func (d *Tcell) handleMouse(e *tcell.EventMouse) bool {
	if d.pointer == nil {
		return false
	}
	x, y := e.Position()
	pos := raw.Pt(float64(x), float64(y))
	mods := tcellModifiers(e.Modifiers())
	buttons := e.Buttons()

	for mask, name := range tcellButtons {
		was := d.lastButtons&mask != 0
		is := buttons&mask != 0
		if is && !was {
			d.pointer.ButtonDown(name, pos, mods)
		}
		if was && !is {
			d.pointer.ButtonUp(name, pos, mods)
		}
	}

	if buttons&tcell.WheelUp != 0 {
		d.pointer.Wheel(raw.Pt(0, -1), mods)
	}
	if buttons&tcell.WheelDown != 0 {
		d.pointer.Wheel(raw.Pt(0, 1), mods)
	}

	d.lastButtons = buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	d.pointer.Move(pos, mods)
	return true
}

// tcellKeyName derives an input identifier from a terminal key event.
func tcellKeyName(e *tcell.EventKey) string {
	switch e.Key() {
	case tcell.KeyRune:
		r := e.Rune()
		if r == ' ' {
			return "KeySpace"
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		return fmt.Sprintf("Key%c", r)
	case tcell.KeyEscape:
		return "KeyEscape"
	case tcell.KeyEnter:
		return "KeyEnter"
	case tcell.KeyTab:
		return "KeyTab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "KeyBackspace"
	case tcell.KeyUp:
		return "KeyArrowUp"
	case tcell.KeyDown:
		return "KeyArrowDown"
	case tcell.KeyLeft:
		return "KeyArrowLeft"
	case tcell.KeyRight:
		return "KeyArrowRight"
	case tcell.KeyDelete:
		return "KeyDelete"
	case tcell.KeyHome:
		return "KeyHome"
	case tcell.KeyEnd:
		return "KeyEnd"
	case tcell.KeyPgUp:
		return "KeyPageUp"
	case tcell.KeyPgDn:
		return "KeyPageDown"
	default:
		return ""
	}
}

// tcellModifiers converts a tcell modifier mask.
func tcellModifiers(m tcell.ModMask) raw.Modifier {
	var mods raw.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(raw.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(raw.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(raw.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(raw.ModMeta)
	}
	return mods
}
