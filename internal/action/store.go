package action

import "sync"

// Store keeps the last-known instance per action name. Entries are created
// lazily on first trigger, overwritten in place thereafter, and cleared on
// manager disposal. Dispatch writes from a single goroutine; the lock lets
// subscribers on other goroutines query safely.
type Store struct {
	mu        sync.RWMutex
	instances map[string]Instance
}

// NewStore creates an empty action store.
func NewStore() *Store {
	return &Store{
		instances: make(map[string]Instance),
	}
}

// Set records an instance as the latest state of its action name.
func (s *Store) Set(inst Instance) {
	if inst.Name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[inst.Name] = inst
}

// Get returns the last-known instance for a name.
func (s *Store) Get(name string) (Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[name]
	return inst, ok
}

// IsPressed reports whether the action's last-known state is pressed or
// held. Never-triggered and released names report false.
func (s *Store) IsPressed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[name]
	return ok && inst.State.IsActive()
}

// Value returns the last-known analog value for a name.
func (s *Store) Value(name string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[name]
	if !ok {
		return 0, false
	}
	return inst.Value, true
}

// Names returns the names of every action seen so far.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	return names
}

// Len returns the number of tracked action names.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances = make(map[string]Instance)
}
