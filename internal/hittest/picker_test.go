package hittest

import (
	"testing"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func TestPickerHitAndMiss(t *testing.T) {
	p := NewPicker(640, 480)
	if err := p.Add("crate", 100, 100, 50, 50, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	hit := p.Pick(raw.Pt(120, 120))
	if !hit.Hit || hit.TargetID != "crate" {
		t.Errorf("inside: %+v", hit)
	}
	if hit.WorldPoint != [3]float64{120, 120, 0} {
		t.Errorf("world point = %v", hit.WorldPoint)
	}

	miss := p.Pick(raw.Pt(300, 300))
	if miss.Hit || miss.TargetID != "" {
		t.Errorf("outside: %+v", miss)
	}
	if miss.WorldPoint != [3]float64{300, 300, 0} {
		t.Errorf("miss world point = %v", miss.WorldPoint)
	}
}

func TestPickerDepthTieBreak(t *testing.T) {
	p := NewPicker(640, 480)
	// Overlapping rectangles; the shallowest depth wins.
	if err := p.Add("far", 100, 100, 100, 100, 10); err != nil {
		t.Fatal(err)
	}
	if err := p.Add("near", 120, 120, 100, 100, 2); err != nil {
		t.Fatal(err)
	}

	hit := p.Pick(raw.Pt(150, 150))
	if hit.TargetID != "near" || hit.Distance != 2 {
		t.Errorf("overlap pick = %+v", hit)
	}

	// A point only inside the far object still hits it.
	hit = p.Pick(raw.Pt(105, 105))
	if hit.TargetID != "far" || hit.Distance != 10 {
		t.Errorf("far-only pick = %+v", hit)
	}
}

func TestPickerDuplicateAdd(t *testing.T) {
	p := NewPicker(640, 480)
	if err := p.Add("crate", 0, 0, 10, 10, 1); err != nil {
		t.Fatal(err)
	}
	if err := p.Add("crate", 50, 50, 10, 10, 1); err != ErrDuplicateObject {
		t.Errorf("duplicate Add = %v", err)
	}
}

func TestPickerMove(t *testing.T) {
	p := NewPicker(640, 480)
	if err := p.Add("crate", 0, 0, 20, 20, 1); err != nil {
		t.Fatal(err)
	}

	if err := p.Move("crate", 200, 200); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if p.Pick(raw.Pt(10, 10)).Hit {
		t.Error("old position must miss after move")
	}
	if !p.Pick(raw.Pt(210, 210)).Hit {
		t.Error("new position must hit after move")
	}

	if err := p.Move("ghost", 0, 0); err != ErrUnknownObject {
		t.Errorf("unknown Move = %v", err)
	}
}

func TestPickerRemoveAndClear(t *testing.T) {
	p := NewPicker(640, 480)
	p.Add("a", 0, 0, 20, 20, 1)
	p.Add("b", 100, 100, 20, 20, 1)
	if p.Len() != 2 {
		t.Fatalf("Len = %d", p.Len())
	}

	p.Remove("a")
	p.Remove("a") // no-op
	if p.Len() != 1 || p.Pick(raw.Pt(10, 10)).Hit {
		t.Error("removed object must not hit")
	}

	p.Clear()
	if p.Len() != 0 || p.Pick(raw.Pt(110, 110)).Hit {
		t.Error("cleared picker must miss everywhere")
	}
}
