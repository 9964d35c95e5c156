package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// State is what the client remembers between runs.
type State struct {
	Server  string    `yaml:"server,omitempty"`
	Session string    `yaml:"session,omitempty"`
	Trip    uuid.UUID `yaml:"trip"`
}

// defaultStatePath checks PLANNER_STATE, then XDG_CONFIG_HOME, then
// ~/.config.
func defaultStatePath() string {
	if p := os.Getenv("PLANNER_STATE"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "travel-planner.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "travel-planner", "state.yaml")
}

// loadState reads path. A missing file is an empty state.
func loadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading state %s: %w", path, err)
	}
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parsing state %s: %w", path, err)
	}
	return s, nil
}

// saveState writes s owner-only since it holds a session token.
func saveState(path string, s State) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	return nil
}
