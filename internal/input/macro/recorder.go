package macro

import (
	"fmt"
	"sync"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// Recorder records action sequences for macro playback. It maintains a
// set of registers, each storing one sequence of action instances.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	register  rune
	actions   []action.Instance
	registers map[rune][]action.Instance
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[rune][]action.Instance),
	}
}

// StartRecording begins recording to the specified register. Returns an
// error if already recording or if the register is invalid.
func (r *Recorder) StartRecording(register rune) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("invalid register: %c", register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("already recording to register %c", r.register)
	}

	r.recording = true
	r.register = register
	r.actions = nil
	return nil
}

// StopRecording ends the current recording and saves it to the register.
// Returns the recorded actions, or nil if not recording. Empty recordings
// leave the register untouched.
func (r *Recorder) StopRecording() []action.Instance {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}

	r.recording = false
	if len(r.actions) > 0 {
		saved := make([]action.Instance, len(r.actions))
		copy(saved, r.actions)
		r.registers[r.register] = saved
	}
	result := r.actions
	r.actions = nil
	return result
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// CurrentRegister returns the register being recorded to, or 0 if not
// recording.
func (r *Recorder) CurrentRegister() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return r.register
	}
	return 0
}

// Record appends an action to the current recording. Does nothing when
// not recording.
func (r *Recorder) Record(inst action.Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.actions = append(r.actions, inst)
	}
}

// PostAction implements the manager's hook interface so the recorder can
// be attached directly to the dispatch path.
func (r *Recorder) PostAction(inst action.Instance) {
	r.Record(inst)
}

// PreEvent is part of the hook interface; the recorder never consumes
// events.
func (r *Recorder) PreEvent(_ raw.Event) bool {
	return false
}

// Get retrieves the macro stored in a register. Returns an empty slice for
// an empty or invalid register.
func (r *Recorder) Get(register rune) []action.Instance {
	r.mu.Lock()
	defer r.mu.Unlock()

	actions := r.registers[register]
	if len(actions) == 0 {
		return []action.Instance{}
	}
	result := make([]action.Instance, len(actions))
	copy(result, actions)
	return result
}

// Set stores a macro in a register, replacing any existing content.
// Storing an empty sequence clears the register.
func (r *Recorder) Set(register rune, actions []action.Instance) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("invalid register: %c", register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(actions) == 0 {
		delete(r.registers, register)
		return nil
	}
	saved := make([]action.Instance, len(actions))
	copy(saved, actions)
	r.registers[register] = saved
	return nil
}

// Registers returns every non-empty register and its sequence.
func (r *Recorder) Registers() map[rune][]action.Instance {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[rune][]action.Instance, len(r.registers))
	for reg, actions := range r.registers {
		seq := make([]action.Instance, len(actions))
		copy(seq, actions)
		result[reg] = seq
	}
	return result
}

// Clear empties every register and aborts any in-flight recording.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recording = false
	r.actions = nil
	r.registers = make(map[rune][]action.Instance)
}
