package macro

import (
	"fmt"
	"sync/atomic"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
)

// TriggerFunc receives each replayed action instance; wire it to the
// manager's TriggerAction.
type TriggerFunc func(inst action.Instance)

// Player replays recorded macros through a trigger function.
type Player struct {
	recorder *Recorder
	playing  atomic.Bool
}

// NewPlayer creates a player over the given recorder's registers.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Play replays a register's sequence count times (minimum 1), invoking
// trigger for each instance. Playback is synchronous; concurrent plays
// are rejected.
func (p *Player) Play(register rune, count int, trigger TriggerFunc) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("invalid register: %c", register)
	}
	if trigger == nil {
		return fmt.Errorf("nil trigger")
	}

	actions := p.recorder.Get(register)
	if len(actions) == 0 {
		return fmt.Errorf("empty register: %c", register)
	}
	if count < 1 {
		count = 1
	}

	if !p.playing.CompareAndSwap(false, true) {
		return fmt.Errorf("already playing a macro")
	}
	defer p.playing.Store(false)

	for i := 0; i < count; i++ {
		for _, inst := range actions {
			trigger(inst)
		}
	}
	return nil
}

// IsPlaying reports whether a playback is in progress.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}
