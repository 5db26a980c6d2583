package source

import (
	"time"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// recorder captures dispatched events for assertions.
type recorder struct {
	events []raw.Event
}

func (r *recorder) dispatch(ev raw.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) inputs() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Input)
	}
	return out
}

func (r *recorder) last() raw.Event {
	return r.events[len(r.events)-1]
}

// fakeClock is a manually advanced clock for deterministic classification.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
