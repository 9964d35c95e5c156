// Package prefs holds process-wide preferences loaded from a YAML file.
// A Source is read once at startup and can be reloaded in place (the API
// server does so on SIGHUP). Readers always see a complete snapshot.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Preferences are the toggles shared by every request.
type Preferences struct {
	// ExplorerEnabled exposes the read-only collection browser.
	ExplorerEnabled bool `yaml:"explorer_enabled" json:"explorer_enabled"`
}

// Default returns the preferences used when no file exists.
func Default() Preferences {
	return Preferences{ExplorerEnabled: false}
}

// Source serves the current Preferences snapshot.
type Source struct {
	path    string
	current atomic.Pointer[Preferences]
}

// Load reads path and returns a Source holding its contents. A missing
// file yields Default(); a malformed one is an error.
func Load(path string) (*Source, error) {
	s := &Source{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Static returns a Source that always serves p. Reload is a no-op.
func Static(p Preferences) *Source {
	s := &Source{}
	s.current.Store(&p)
	return s
}

// Current returns the active snapshot.
func (s *Source) Current() Preferences {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return Default()
}

// Path is the file the Source reloads from, empty for a static Source.
func (s *Source) Path() string {
	return s.path
}

// Reload re-reads the file and swaps the snapshot. On error the previous
// snapshot stays active.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}

	p := Default()
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// keep defaults
	case err != nil:
		return fmt.Errorf("prefs.Source.Reload: read %s: %w", s.path, err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("prefs.Source.Reload: parse %s: %w", s.path, err)
		}
	}

	s.current.Store(&p)
	return nil
}
