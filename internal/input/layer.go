package input

import (
	"sort"
	"sync"
)

// Canonical layer names shipped by default.
const (
	// LayerModal is the highest-priority layer (dialogs, popups).
	LayerModal = "modal"

	// LayerUI sits between modal and scene (toolbars, panels).
	LayerUI = "ui"

	// LayerScene is the lowest layer (3D viewport interaction).
	LayerScene = "scene"
)

// Default layer priorities.
const (
	PriorityModal = 300
	PriorityUI    = 200
	PriorityScene = 100
)

// Layer is one entry in the priority blocking gate.
type Layer struct {
	// Name identifies the layer.
	Name string

	// Active marks the layer as currently engaged.
	Active bool

	// Blocking makes an active layer halt dispatch for every layer below
	// it.
	Blocking bool

	// Priority orders evaluation; higher is evaluated first.
	Priority int
}

// layerStack holds the priority-ordered blocking gate.
type layerStack struct {
	mu     sync.RWMutex
	layers map[string]*Layer
	// ordered caches layers sorted by descending priority.
	ordered []*Layer
}

// newLayerStack creates a stack holding the three canonical layers, all
// inactive.
func newLayerStack() *layerStack {
	s := &layerStack{
		layers: make(map[string]*Layer),
	}
	s.addLocked(&Layer{Name: LayerModal, Blocking: true, Priority: PriorityModal})
	s.addLocked(&Layer{Name: LayerUI, Blocking: true, Priority: PriorityUI})
	s.addLocked(&Layer{Name: LayerScene, Priority: PriorityScene})
	return s
}

// addLocked inserts a layer and re-sorts. Caller holds the write lock or
// has exclusive access.
func (s *layerStack) addLocked(l *Layer) {
	s.layers[l.Name] = l
	s.ordered = append(s.ordered, l)
	sort.SliceStable(s.ordered, func(i, j int) bool {
		return s.ordered[i].Priority > s.ordered[j].Priority
	})
}

// add registers a new layer. Duplicate names are a setup-time error.
func (s *layerStack) add(l Layer) error {
	if l.Name == "" {
		return &ConfigError{Kind: "layer", Name: l.Name}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layers[l.Name]; exists {
		return ErrDuplicateLayer
	}
	s.addLocked(&l)
	return nil
}

// setActive toggles a layer. Unknown names report false.
func (s *layerStack) setActive(name string, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers[name]
	if !ok {
		return false
	}
	l.Active = active
	return true
}

// setBlocking changes a layer's blocking flag. Unknown names report false.
func (s *layerStack) setBlocking(name string, blocking bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers[name]
	if !ok {
		return false
	}
	l.Blocking = blocking
	return true
}

// get returns a copy of the named layer.
func (s *layerStack) get(name string) (Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.layers[name]
	if !ok {
		return Layer{}, false
	}
	return *l, true
}

// blockedBy scans layers by strictly descending priority and returns the
// first active blocking layer, which halts evaluation of all lower layers.
func (s *layerStack) blockedBy() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.ordered {
		if l.Active && l.Blocking {
			return l.Name, true
		}
	}
	return "", false
}

// snapshot returns copies of every layer in descending priority order.
func (s *layerStack) snapshot() []Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Layer, 0, len(s.ordered))
	for _, l := range s.ordered {
		out = append(out, *l)
	}
	return out
}
