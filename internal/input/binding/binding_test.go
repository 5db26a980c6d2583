package binding

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func TestBindingMatches(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	tests := []struct {
		name string
		b    Binding
		ev   raw.Event
		want bool
	}{
		{
			name: "plain input match",
			b:    NewBinding("KeyG", "grab"),
			ev:   raw.Event{Input: "KeyG", Phase: raw.PhasePressed},
			want: true,
		},
		{
			name: "different input",
			b:    NewBinding("KeyG", "grab"),
			ev:   raw.Event{Input: "KeyR"},
			want: false,
		},
		{
			name: "modifier subset admits extras",
			b:    NewBinding("KeyS", "save").WithModifiers(raw.ModCtrl),
			ev:   raw.Event{Input: "KeyS", Modifiers: raw.ModCtrl | raw.ModShift},
			want: true,
		},
		{
			name: "modifier missing",
			b:    NewBinding("KeyS", "save").WithModifiers(raw.ModCtrl),
			ev:   raw.Event{Input: "KeyS"},
			want: false,
		},
		{
			name: "exact modifiers reject extras",
			b:    NewBinding("KeyS", "save").WithExactModifiers(raw.ModCtrl),
			ev:   raw.Event{Input: "KeyS", Modifiers: raw.ModCtrl | raw.ModShift},
			want: false,
		},
		{
			name: "exact modifiers match",
			b:    NewBinding("KeyS", "save").WithExactModifiers(raw.ModCtrl),
			ev:   raw.Event{Input: "KeyS", Modifiers: raw.ModCtrl},
			want: true,
		},
		{
			name: "phase selector admits",
			b:    NewBinding("KeyG", "grab").WithPhase(PhasePressed),
			ev:   raw.Event{Input: "KeyG", Phase: raw.PhasePressed},
			want: true,
		},
		{
			name: "phase selector rejects release",
			b:    NewBinding("KeyG", "grab").WithPhase(PhasePressed),
			ev:   raw.Event{Input: "KeyG", Phase: raw.PhaseReleased},
			want: false,
		},
		{
			name: "condition true",
			b:    NewBinding("MouseLeftClick", "select").WithCondition(CondTargetIsObject),
			ev: raw.Event{Input: "MouseLeftClick"}.WithHit(
				raw.HitInfo{Hit: true, TargetID: "crate"},
			),
			want: true,
		},
		{
			name: "condition false",
			b:    NewBinding("MouseLeftClick", "select").WithCondition(CondTargetIsObject),
			ev:   raw.Event{Input: "MouseLeftClick"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Env{Event: tt.ev}
			if got := tt.b.Matches(tt.ev, reg, env); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in      string
		want    PhaseSelector
		wantErr bool
	}{
		{"", PhaseAny, false},
		{"any", PhaseAny, false},
		{"pressed", PhasePressed, false},
		{"released", PhaseReleased, false},
		{"bogus", PhaseAny, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePhase(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePhase(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
