package source

import (
	"errors"
	"testing"

	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func newTestVR(session bool) (*VR, *recorder, error) {
	rec := &recorder{}
	config := DefaultVRConfig()
	config.SessionActive = func() bool { return session }
	v := NewVR(config)
	err := v.Attach(rec.dispatch)
	return v, rec, err
}

func TestVRNoSession(t *testing.T) {
	v, _, err := newTestVR(false)

	var unavailable *input.SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Attach = %v, want SourceUnavailableError", err)
	}
	if v.Available() {
		t.Error("adapter without a session must be unavailable")
	}

	// Nil SessionActive also counts as no session.
	bare := NewVR(DefaultVRConfig())
	if err := bare.Attach(func(raw.Event) {}); err == nil {
		t.Error("nil SessionActive must refuse to attach")
	}
}

func TestVRTriggerAndGrip(t *testing.T) {
	v, rec, err := newTestVR(true)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	v.TriggerDown(HandLeft, 0.8)
	v.TriggerDown(HandLeft, 0.9) // repeat absorbed
	v.GripDown(HandRight, 1)
	v.TriggerUp(HandLeft)
	v.TriggerUp(HandLeft) // orphan absorbed
	v.GripUp(HandRight)

	want := []string{"VRLeftTrigger", "VRRightGrip", "VRLeftTrigger", "VRRightGrip"}
	got := rec.inputs()
	if len(got) != len(want) {
		t.Fatalf("inputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("inputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if rec.events[0].Value != 0.8 || rec.events[0].Phase != raw.PhasePressed {
		t.Errorf("trigger press = %+v", rec.events[0])
	}
	if rec.events[2].Phase != raw.PhaseReleased {
		t.Errorf("trigger release = %+v", rec.events[2])
	}
}

func TestVRStick(t *testing.T) {
	v, rec, _ := newTestVR(true)

	v.Stick(HandRight, raw.Pt(0.5, -0.25))

	if len(rec.events) != 2 {
		t.Fatalf("got %d events", len(rec.events))
	}
	x, y := rec.events[0], rec.events[1]
	if x.Input != "VRRightStickX" || x.Value != 0.5 || x.Kind != raw.KindAxis {
		t.Errorf("stick x = %+v", x)
	}
	if y.Input != "VRRightStickY" || y.Value != -0.25 {
		t.Errorf("stick y = %+v", y)
	}
}

func TestVRPoseStream(t *testing.T) {
	v, rec, _ := newTestVR(true)

	v.Pose(HandLeft, raw.Pt(10, 20), 0.95)
	v.Pose(HandLeft, raw.Pt(11, 21), 0.97)
	v.PoseLost(HandLeft)
	v.PoseLost(HandLeft) // orphan absorbed

	if len(rec.events) != 3 {
		t.Fatalf("got %d events: %v", len(rec.events), rec.inputs())
	}
	open, move, closeEv := rec.events[0], rec.events[1], rec.events[2]
	if open.Input != "VRLeftPose" || open.Phase != raw.PhasePressed || open.Kind != raw.KindStream {
		t.Errorf("open = %+v", open)
	}
	if open.Position == nil || *open.Position != raw.Pt(10, 20) {
		t.Errorf("open position = %v", open.Position)
	}
	if move.Phase != raw.PhaseMoved || move.Value != 0.97 {
		t.Errorf("move = %+v", move)
	}
	if closeEv.Phase != raw.PhaseReleased {
		t.Errorf("close = %+v", closeEv)
	}

	// A new sample after loss reopens the stream.
	v.Pose(HandLeft, raw.Pt(12, 22), 0.9)
	if rec.last().Phase != raw.PhasePressed {
		t.Errorf("reopen = %+v", rec.last())
	}
}

func TestHandString(t *testing.T) {
	if HandLeft.String() != "left" || HandRight.String() != "right" {
		t.Errorf("hand names = %q, %q", HandLeft.String(), HandRight.String())
	}
}
