package source

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// VRName is the canonical VR controller source name.
const VRName = "vr"

// Hand identifies a VR controller hand.
type Hand uint8

// Hands.
const (
	HandLeft Hand = iota
	HandRight
)

// String returns the hand name.
func (h Hand) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

// VRConfig configures the VR controller adapter.
type VRConfig struct {
	// Logger receives adapter diagnostics.
	Logger zerolog.Logger

	// SessionActive reports whether a VR session exists; without one the
	// adapter self-disables. May be nil, which counts as no session.
	SessionActive func() bool

	// Clock supplies event timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultVRConfig returns a configuration with defaults.
func DefaultVRConfig() VRConfig {
	return VRConfig{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
}

// VR is the VR controller adapter. The host pushes per-hand trigger and
// grip presses (buttons), thumbstick samples (axes), and controller poses
// (a continuous stream). Without an active session the adapter reports
// unavailable and refuses to attach.
type VR struct {
	mu       sync.Mutex
	config   VRConfig
	dispatch raw.Dispatcher
	pressed  map[string]bool
	posing   map[Hand]bool
	closed   bool
}

// NewVR creates a VR controller adapter.
func NewVR(config VRConfig) *VR {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &VR{
		config:  config,
		pressed: make(map[string]bool),
		posing:  make(map[Hand]bool),
	}
}

// Name returns the source name.
func (v *VR) Name() string {
	return VRName
}

// Attach wires the adapter to the dispatcher, failing without an active
// session.
func (v *VR) Attach(dispatch raw.Dispatcher) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.sessionActive() {
		v.config.Logger.Warn().Str("source", VRName).Msg("no vr session, source disabled")
		return &input.SourceUnavailableError{Source: VRName, Reason: "no active vr session"}
	}
	v.dispatch = dispatch
	return nil
}

// Available reports whether a VR session is active and the adapter is
// attached.
func (v *VR) Available() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.closed && v.sessionActive()
}

func (v *VR) sessionActive() bool {
	return v.config.SessionActive != nil && v.config.SessionActive()
}

// TriggerDown emits the hand's trigger press. Value is the analog squeeze
// amount in [0, 1].
func (v *VR) TriggerDown(hand Hand, value float64) {
	v.button(raw.VRInput(hand.String(), "Trigger"), raw.PhasePressed, value)
}

// TriggerUp emits the hand's trigger release.
func (v *VR) TriggerUp(hand Hand) {
	v.button(raw.VRInput(hand.String(), "Trigger"), raw.PhaseReleased, 0)
}

// GripDown emits the hand's grip press.
func (v *VR) GripDown(hand Hand, value float64) {
	v.button(raw.VRInput(hand.String(), "Grip"), raw.PhasePressed, value)
}

// GripUp emits the hand's grip release.
func (v *VR) GripUp(hand Hand) {
	v.button(raw.VRInput(hand.String(), "Grip"), raw.PhaseReleased, 0)
}

func (v *VR) button(inputID string, phase raw.Phase, value float64) {
	v.mu.Lock()
	if v.closed || v.dispatch == nil {
		v.mu.Unlock()
		return
	}
	if phase == raw.PhasePressed {
		if v.pressed[inputID] {
			v.mu.Unlock()
			return
		}
		v.pressed[inputID] = true
	} else {
		if !v.pressed[inputID] {
			v.mu.Unlock()
			return
		}
		delete(v.pressed, inputID)
	}
	dispatch := v.dispatch
	now := v.config.Clock()
	v.mu.Unlock()

	dispatch(raw.Event{
		Input: inputID,
		Phase: phase,
		Kind:  raw.KindButton,
		Value: value,
		Time:  now,
	})
}

// Stick emits the hand's thumbstick sample as two axis events, one per
// component.
func (v *VR) Stick(hand Hand, value raw.Point) {
	v.mu.Lock()
	if v.closed || v.dispatch == nil {
		v.mu.Unlock()
		return
	}
	dispatch := v.dispatch
	now := v.config.Clock()
	v.mu.Unlock()

	dispatch(raw.Event{
		Input: raw.VRInput(hand.String(), "StickX"),
		Phase: raw.PhaseMoved,
		Kind:  raw.KindAxis,
		Value: value.X,
		Time:  now,
	})
	dispatch(raw.Event{
		Input: raw.VRInput(hand.String(), "StickY"),
		Phase: raw.PhaseMoved,
		Kind:  raw.KindAxis,
		Value: value.Y,
		Time:  now,
	})
}

// Pose emits the hand's controller pose sample. The first sample of a
// hand opens the stream; subsequent samples continue it. Position carries
// the projected 2D position, value the tracking confidence.
func (v *VR) Pose(hand Hand, position raw.Point, confidence float64) {
	v.mu.Lock()
	if v.closed || v.dispatch == nil {
		v.mu.Unlock()
		return
	}
	phase := raw.PhaseMoved
	if !v.posing[hand] {
		v.posing[hand] = true
		phase = raw.PhasePressed
	}
	dispatch := v.dispatch
	now := v.config.Clock()
	v.mu.Unlock()

	ev := raw.Event{
		Input: raw.VRInput(hand.String(), "Pose"),
		Phase: phase,
		Kind:  raw.KindStream,
		Value: confidence,
		Time:  now,
	}
	ev.Position = &position
	dispatch(ev)
}

// PoseLost closes the hand's pose stream, e.g. when tracking drops.
func (v *VR) PoseLost(hand Hand) {
	v.mu.Lock()
	if v.closed || v.dispatch == nil || !v.posing[hand] {
		v.mu.Unlock()
		return
	}
	delete(v.posing, hand)
	dispatch := v.dispatch
	now := v.config.Clock()
	v.mu.Unlock()

	dispatch(raw.Event{
		Input: raw.VRInput(hand.String(), "Pose"),
		Phase: raw.PhaseReleased,
		Kind:  raw.KindStream,
		Time:  now,
	})
}

// Close detaches the adapter and drops all tracking state. Idempotent.
func (v *VR) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.dispatch = nil
	v.pressed = make(map[string]bool)
	v.posing = make(map[Hand]bool)
	return nil
}
