package input

import "testing"

func TestLayerStackDefaults(t *testing.T) {
	s := newLayerStack()

	layers := s.snapshot()
	if len(layers) != 3 {
		t.Fatalf("got %d layers", len(layers))
	}
	wantOrder := []string{LayerModal, LayerUI, LayerScene}
	for i, want := range wantOrder {
		if layers[i].Name != want {
			t.Errorf("layers[%d] = %q, want %q", i, layers[i].Name, want)
		}
		if layers[i].Active {
			t.Errorf("layer %q must start inactive", want)
		}
	}

	if _, blocked := s.blockedBy(); blocked {
		t.Error("all-inactive stack must not block")
	}
}

func TestLayerStackBlocking(t *testing.T) {
	s := newLayerStack()

	// Scene is non-blocking by default.
	s.setActive(LayerScene, true)
	if _, blocked := s.blockedBy(); blocked {
		t.Error("active non-blocking layer must not block")
	}

	s.setActive(LayerUI, true)
	name, blocked := s.blockedBy()
	if !blocked || name != LayerUI {
		t.Errorf("blockedBy = %q, %v", name, blocked)
	}

	// A higher-priority blocking layer wins.
	s.setActive(LayerModal, true)
	if name, _ := s.blockedBy(); name != LayerModal {
		t.Errorf("blockedBy = %q, want modal", name)
	}

	s.setActive(LayerModal, false)
	s.setBlocking(LayerUI, false)
	if _, blocked := s.blockedBy(); blocked {
		t.Error("deactivated and non-blocking layers must not block")
	}
}

func TestLayerStackCustomLayer(t *testing.T) {
	s := newLayerStack()

	if err := s.add(Layer{Name: "overlay", Blocking: true, Priority: 250}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.add(Layer{Name: "overlay", Priority: 1}); err != ErrDuplicateLayer {
		t.Errorf("duplicate add = %v", err)
	}
	if err := s.add(Layer{}); err == nil {
		t.Error("unnamed layer must fail")
	}

	// Priority 250 slots between modal and ui.
	layers := s.snapshot()
	if layers[1].Name != "overlay" {
		t.Errorf("layers[1] = %q, want overlay", layers[1].Name)
	}

	s.setActive("overlay", true)
	s.setActive(LayerUI, true)
	if name, _ := s.blockedBy(); name != "overlay" {
		t.Errorf("blockedBy = %q, want overlay", name)
	}
}

func TestLayerStackUnknownNames(t *testing.T) {
	s := newLayerStack()
	if s.setActive("nope", true) {
		t.Error("unknown setActive must report false")
	}
	if s.setBlocking("nope", true) {
		t.Error("unknown setBlocking must report false")
	}
	if _, ok := s.get("nope"); ok {
		t.Error("unknown get must report false")
	}
}
