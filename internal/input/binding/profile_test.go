package binding

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

func sampleProfile() *Profile {
	return &Profile{
		Name: "default",
		Contexts: []ProfileContext{
			{
				Name: "view",
				Bindings: []ProfileBinding{
					{Input: "MouseLeftClick", Action: "select", Condition: CondTargetIsObject},
					{Input: "MouseLeftClick", Action: "deselect", Condition: CondTargetIsBackground},
					{Input: "MouseLeftDrag", Action: "rotate-camera"},
				},
			},
			{
				Name: "edit",
				Bindings: []ProfileBinding{
					{Input: "KeyG", Action: "grab", Phase: "pressed"},
					{Input: "KeyS", Action: "save", Modifiers: "Ctrl", Exact: true},
				},
			},
		},
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"bindings.json", FormatJSON, false},
		{"bindings.yaml", FormatYAML, false},
		{"bindings.YML", FormatYAML, false},
		{"bindings.toml", FormatJSON, true},
		{"bindings", FormatJSON, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("FormatForPath = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		p := sampleProfile()
		data, err := p.Marshal(format)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", format, err)
		}
		back, err := ParseProfile(data, format)
		if err != nil {
			t.Fatalf("ParseProfile(%v): %v", format, err)
		}
		if back.Name != p.Name || len(back.Contexts) != len(p.Contexts) {
			t.Fatalf("format %v: got %+v", format, back)
		}
		if got := back.Contexts[1].Bindings[1]; got != p.Contexts[1].Bindings[1] {
			t.Errorf("format %v: binding = %+v", format, got)
		}
	}
}

func TestProfileFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := SaveProfile(path, sampleProfile()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	back, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if back.Name != "default" || len(back.Contexts) != 2 {
		t.Errorf("got %+v", back)
	}
}

func TestBuildContexts(t *testing.T) {
	contexts, err := sampleProfile().BuildContexts()
	if err != nil {
		t.Fatalf("BuildContexts: %v", err)
	}
	if len(contexts) != 2 {
		t.Fatalf("got %d contexts", len(contexts))
	}

	reg := NewRegistry(zerolog.Nop())
	edit := contexts[1]
	if edit.Name() != "edit" {
		t.Fatalf("context name = %q", edit.Name())
	}

	// Phase selector survives the build.
	press := raw.Event{Input: "KeyG", Phase: raw.PhasePressed}
	if _, ok := edit.Resolve(press, reg, Env{Event: press}); !ok {
		t.Error("pressed KeyG must resolve")
	}
	release := raw.Event{Input: "KeyG", Phase: raw.PhaseReleased}
	if _, ok := edit.Resolve(release, reg, Env{Event: release}); ok {
		t.Error("released KeyG must not resolve")
	}

	// Exact modifiers survive the build.
	extra := raw.Event{Input: "KeyS", Modifiers: raw.ModCtrl | raw.ModShift}
	if _, ok := edit.Resolve(extra, reg, Env{Event: extra}); ok {
		t.Error("exact-modifier binding must reject extra modifiers")
	}
}

func TestBuildContextsErrors(t *testing.T) {
	unnamed := &Profile{Contexts: []ProfileContext{{Name: ""}}}
	if _, err := unnamed.BuildContexts(); err == nil {
		t.Error("unnamed context must fail")
	}

	incomplete := &Profile{Contexts: []ProfileContext{
		{Name: "view", Bindings: []ProfileBinding{{Input: "KeyA"}}},
	}}
	if _, err := incomplete.BuildContexts(); err == nil {
		t.Error("binding without action must fail")
	}

	badPhase := &Profile{Contexts: []ProfileContext{
		{Name: "view", Bindings: []ProfileBinding{{Input: "KeyA", Action: "a", Phase: "sideways"}}},
	}}
	if _, err := badPhase.BuildContexts(); err == nil {
		t.Error("unknown phase must fail")
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	ctx := NewContext("edit",
		NewBinding("KeyS", "save").WithExactModifiers(raw.ModCtrl),
		NewBinding("KeyG", "grab").WithPhase(PhasePressed).WithCondition(CondHasActiveSelection),
	)

	pc := FromContext(ctx)
	if pc.Name != "edit" || len(pc.Bindings) != 2 {
		t.Fatalf("got %+v", pc)
	}
	if pc.Bindings[0].Modifiers != "Ctrl" || !pc.Bindings[0].Exact {
		t.Errorf("save binding = %+v", pc.Bindings[0])
	}
	if pc.Bindings[1].Phase != "pressed" || pc.Bindings[1].Condition != CondHasActiveSelection {
		t.Errorf("grab binding = %+v", pc.Bindings[1])
	}

	// Rebuilding yields an equivalent context.
	rebuilt, err := (&Profile{Name: "p", Contexts: []ProfileContext{pc}}).BuildContexts()
	if err != nil {
		t.Fatalf("BuildContexts: %v", err)
	}
	if got := rebuilt[0].Bindings(); len(got) != 2 || got[0] != ctx.Bindings()[0] {
		t.Errorf("rebuilt bindings = %+v", got)
	}
}

func TestQueryProfile(t *testing.T) {
	data, err := sampleProfile().Marshal(FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	got := QueryProfile(data, "contexts.#(name==edit).bindings.#(action==grab).input")
	if got.String() != "KeyG" {
		t.Errorf("query = %q, want KeyG", got.String())
	}
	if QueryProfile(data, "contexts.#(name==nope).name").Exists() {
		t.Error("missing context must not exist")
	}
}

func TestPatchBindingInput(t *testing.T) {
	data, err := sampleProfile().Marshal(FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	patched, err := PatchBindingInput(data, "edit", "grab", "KeyM")
	if err != nil {
		t.Fatalf("PatchBindingInput: %v", err)
	}

	if got := QueryProfile(patched, "contexts.#(name==edit).bindings.#(action==grab).input"); got.String() != "KeyM" {
		t.Errorf("patched input = %q, want KeyM", got.String())
	}
	// Other bindings are untouched.
	if got := QueryProfile(patched, "contexts.#(name==edit).bindings.#(action==save).input"); got.String() != "KeyS" {
		t.Errorf("save input = %q, want KeyS", got.String())
	}

	if _, err := PatchBindingInput(data, "edit", "no-such-action", "KeyM"); err != ErrBindingNotFound {
		t.Errorf("missing action: err = %v, want ErrBindingNotFound", err)
	}
	if _, err := PatchBindingInput(data, "no-such-context", "grab", "KeyM"); err != ErrBindingNotFound {
		t.Errorf("missing context: err = %v, want ErrBindingNotFound", err)
	}
}
