package binding

import (
	"fmt"

	"github.com/quasilyte/gdata"
)

// ProfileStore persists binding profiles in the per-application writable
// data location.
type ProfileStore struct {
	manager *gdata.Manager
}

// OpenProfileStore opens the data location for the named application.
func OpenProfileStore(appName string) (*ProfileStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening profile store: %w", err)
	}
	return &ProfileStore{manager: m}, nil
}

// itemKey namespaces profile items within the application data location.
func itemKey(name string) string {
	return "profile-" + name
}

// Save persists a profile as JSON under its name.
func (s *ProfileStore) Save(p *Profile) error {
	if p.Name == "" {
		return ErrEmptyName
	}

	data, err := p.Marshal(FormatJSON)
	if err != nil {
		return err
	}
	if err := s.manager.SaveItem(itemKey(p.Name), data); err != nil {
		return fmt.Errorf("saving profile %q: %w", p.Name, err)
	}
	return nil
}

// Load reads a saved profile by name. The boolean reports whether the
// profile exists.
func (s *ProfileStore) Load(name string) (*Profile, bool, error) {
	data, err := s.manager.LoadItem(itemKey(name))
	if err != nil {
		return nil, false, fmt.Errorf("loading profile %q: %w", name, err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	p, err := ParseProfile(data, FormatJSON)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// Delete removes a saved profile by overwriting it with empty data.
func (s *ProfileStore) Delete(name string) error {
	if err := s.manager.SaveItem(itemKey(name), nil); err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	return nil
}
