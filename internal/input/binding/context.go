package binding

import (
	"sync"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// Context is a named, ordered binding table representing one interaction
// mode. Contexts never attach hardware listeners; only the input manager
// queries them, and the manager is also the sole caller of Activate and
// Deactivate.
type Context struct {
	mu       sync.RWMutex
	name     string
	bindings []Binding
	active   bool
}

// NewContext creates a context with the given bindings in authored order.
func NewContext(name string, bindings ...Binding) *Context {
	c := &Context{name: name}
	c.bindings = append(c.bindings, bindings...)
	return c
}

// Name returns the context name.
func (c *Context) Name() string {
	return c.name
}

// Add appends bindings to the end of the table.
func (c *Context) Add(bindings ...Binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = append(c.bindings, bindings...)
}

// Bindings returns a copy of the binding table in authored order.
func (c *Context) Bindings() []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Binding, len(c.bindings))
	copy(out, c.bindings)
	return out
}

// Len returns the number of bindings.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bindings)
}

// Active reports whether the context is currently active.
func (c *Context) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Activate marks the context active. Pure bookkeeping.
func (c *Context) Activate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
}

// Deactivate marks the context inactive. Pure bookkeeping.
func (c *Context) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// Resolve returns the first binding matching the event, scanning the table
// in authored order. There is no fallthrough: exactly one or zero bindings
// result per event.
func (c *Context) Resolve(ev raw.Event, eval Evaluator, env Env) (Binding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.bindings {
		if b.Matches(ev, eval, env) {
			return b, true
		}
	}
	return Binding{}, false
}

// Rebind points every binding for the named action at a new input
// identifier and returns how many bindings changed.
func (c *Context) Rebind(actionName, newInput string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := 0
	for i := range c.bindings {
		if c.bindings[i].Action == actionName {
			c.bindings[i].Input = newInput
			changed++
		}
	}
	return changed
}

// RebindInput replaces one input identifier with another across the table
// and returns how many bindings changed.
func (c *Context) RebindInput(oldInput, newInput string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := 0
	for i := range c.bindings {
		if c.bindings[i].Input == oldInput {
			c.bindings[i].Input = newInput
			changed++
		}
	}
	return changed
}

// Remove deletes every binding for the named action and returns how many
// were removed.
func (c *Context) Remove(actionName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.bindings[:0]
	removed := 0
	for _, b := range c.bindings {
		if b.Action == actionName {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	c.bindings = kept
	return removed
}
