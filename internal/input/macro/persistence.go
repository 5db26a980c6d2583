package macro

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// persistedAction is the JSON-serializable form of action.Instance.
type persistedAction struct {
	Name     string     `json:"name"`
	Value    float64    `json:"value,omitempty"`
	State    uint8      `json:"state"`
	Source   string     `json:"source,omitempty"`
	Position *raw.Point `json:"position,omitempty"`
	Delta    *raw.Point `json:"delta,omitempty"`
}

// persistedMacro represents a single register for persistence.
type persistedMacro struct {
	Register string            `json:"register"`
	Actions  []persistedAction `json:"actions"`
}

// persistedData is the root structure for macro persistence.
type persistedData struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Macros  []persistedMacro `json:"macros"`
}

const currentVersion = 1

func toPersistedAction(inst action.Instance) persistedAction {
	return persistedAction{
		Name:     inst.Name,
		Value:    inst.Value,
		State:    uint8(inst.State),
		Source:   inst.Source,
		Position: inst.Position,
		Delta:    inst.Delta,
	}
}

// toInstance restores an action.Instance. Timestamps reset to load time
// since playback timing belongs to the player, not the recording.
func toInstance(p persistedAction) action.Instance {
	return action.Instance{
		Name:     p.Name,
		Value:    p.Value,
		State:    action.State(p.State),
		Source:   p.Source,
		Position: p.Position,
		Delta:    p.Delta,
		Time:     time.Now(),
	}
}

// Save writes all registers to the specified file, atomically via a
// temporary file and rename.
func Save(recorder *Recorder, path string) error {
	registers := recorder.Registers()

	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now(),
		Macros:  make([]persistedMacro, 0, len(registers)),
	}
	for reg, actions := range registers {
		m := persistedMacro{
			Register: string(reg),
			Actions:  make([]persistedAction, len(actions)),
		}
		for i, inst := range actions {
			m.Actions[i] = toPersistedAction(inst)
		}
		data.Macros = append(data.Macros, m)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal macros: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create macro dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".macros-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write macros: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename macro file: %w", err)
	}
	return nil
}

// Load reads registers from the specified file into the recorder,
// replacing its current contents. A missing file is not an error.
func Load(recorder *Recorder, path string) error {
	encoded, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read macro file: %w", err)
	}

	var data persistedData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return fmt.Errorf("unmarshal macros: %w", err)
	}
	if data.Version != currentVersion {
		return fmt.Errorf("unsupported macro file version %d", data.Version)
	}

	recorder.Clear()
	for _, m := range data.Macros {
		if m.Register == "" {
			continue
		}
		reg := NormalizeRegister([]rune(m.Register)[0])
		if reg == 0 {
			continue
		}
		actions := make([]action.Instance, len(m.Actions))
		for i, p := range m.Actions {
			actions[i] = toInstance(p)
		}
		if err := recorder.Set(reg, actions); err != nil {
			return err
		}
	}
	return nil
}
