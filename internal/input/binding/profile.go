package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// Format identifies a profile serialization format.
type Format uint8

const (
	// FormatJSON serializes profiles as JSON.
	FormatJSON Format = iota
	// FormatYAML serializes profiles as YAML.
	FormatYAML
)

// Profile is a serializable set of binding contexts — the one piece of
// state this subsystem may persist.
type Profile struct {
	// Name identifies the profile ("default", "lefty", ...).
	Name string `json:"name" yaml:"name"`

	// Contexts holds one binding table per interaction mode.
	Contexts []ProfileContext `json:"contexts" yaml:"contexts"`
}

// ProfileContext is the serialized form of one context.
type ProfileContext struct {
	// Name is the context name.
	Name string `json:"name" yaml:"name"`

	// Bindings is the binding table in authored order.
	Bindings []ProfileBinding `json:"bindings" yaml:"bindings"`
}

// ProfileBinding is the serialized form of one binding.
type ProfileBinding struct {
	// Input is the normalized input identifier.
	Input string `json:"input" yaml:"input"`

	// Action is the action name.
	Action string `json:"action" yaml:"action"`

	// Modifiers is a modifier list like "Ctrl+Shift"; empty means none.
	Modifiers string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`

	// Exact demands exact modifier equality instead of a subset check.
	Exact bool `json:"exact,omitempty" yaml:"exact,omitempty"`

	// Condition is a predicate expression; empty means unconditional.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`

	// Phase is a phase selector name; empty means any.
	Phase string `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// FormatForPath derives the serialization format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseProfile decodes a profile document.
func ParseProfile(data []byte, format Format) (*Profile, error) {
	var p Profile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing JSON profile: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing YAML profile: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return &p, nil
}

// Marshal encodes the profile in the given format.
func (p *Profile) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatYAML:
		return yaml.Marshal(p)
	default:
		return nil, ErrUnknownFormat
	}
}

// LoadProfile reads a profile from disk, picking the format from the file
// extension.
func LoadProfile(path string) (*Profile, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return ParseProfile(data, format)
}

// SaveProfile writes a profile to disk, picking the format from the file
// extension.
func SaveProfile(path string, p *Profile) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := p.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	return nil
}

// BuildContexts converts the profile into live contexts.
func (p *Profile) BuildContexts() ([]*Context, error) {
	contexts := make([]*Context, 0, len(p.Contexts))
	for _, pc := range p.Contexts {
		if pc.Name == "" {
			return nil, fmt.Errorf("profile %q: %w", p.Name, ErrEmptyName)
		}

		bindings := make([]Binding, 0, len(pc.Bindings))
		for _, pb := range pc.Bindings {
			b, err := pb.Build()
			if err != nil {
				return nil, fmt.Errorf("profile %q, context %q: %w", p.Name, pc.Name, err)
			}
			bindings = append(bindings, b)
		}
		contexts = append(contexts, NewContext(pc.Name, bindings...))
	}
	return contexts, nil
}

// Build converts a serialized binding into a live one.
func (pb ProfileBinding) Build() (Binding, error) {
	if pb.Input == "" || pb.Action == "" {
		return Binding{}, fmt.Errorf("binding %q -> %q: %w", pb.Input, pb.Action, ErrEmptyName)
	}

	phase, err := ParsePhase(pb.Phase)
	if err != nil {
		return Binding{}, err
	}

	return Binding{
		Input:            pb.Input,
		Action:           pb.Action,
		Modifiers:        raw.ParseModifiers(pb.Modifiers),
		RequireModifiers: pb.Exact,
		Condition:        pb.Condition,
		Phase:            phase,
	}, nil
}

// FromContext serializes a live context back into profile form.
func FromContext(c *Context) ProfileContext {
	bindings := c.Bindings()
	out := ProfileContext{
		Name:     c.Name(),
		Bindings: make([]ProfileBinding, 0, len(bindings)),
	}
	for _, b := range bindings {
		out.Bindings = append(out.Bindings, ProfileBinding{
			Input:     b.Input,
			Action:    b.Action,
			Modifiers: b.Modifiers.String(),
			Exact:     b.RequireModifiers,
			Condition: b.Condition,
			Phase:     phaseName(b.Phase),
		})
	}
	return out
}

// phaseName returns the serialized phase selector name, empty for any.
func phaseName(s PhaseSelector) string {
	if s == PhaseAny {
		return ""
	}
	return s.String()
}
