package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const stateVersion = 1

// ErrCorruptState is returned when the state file cannot be decoded
var ErrCorruptState = errors.New("corrupt reminder state")

// State is what the reminder persists between runs
type State struct {
	Version      int       `json:"version"`
	LastRun      time.Time `json:"last_run,omitzero"`
	SnoozedUntil time.Time `json:"snoozed_until,omitzero"`
	Disabled     bool      `json:"disabled"`
}

// Store handles persistence of reminder state
type Store struct {
	mu    sync.RWMutex
	path  string
	state State
}

// DefaultStatePath returns ~/.clw/reminder.json
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".clw", "reminder.json")
}

// NewStore creates a store backed by path (DefaultStatePath when empty).
// Existing state is loaded; a missing or corrupt file starts fresh.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultStatePath()
	}
	s := &Store{path: path, state: State{Version: stateVersion}}
	_ = s.Load()
	return s
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads state from disk. A missing file leaves fresh state.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, err)
	}
	if st.Version == 0 {
		st.Version = stateVersion
	}
	s.state = st
	return nil
}

// Save writes state to disk, replacing the file atomically
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save(s.state)
}

func (s *Store) save(st State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".reminder-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Update applies fn to a copy of the state and persists it. The in-memory
// state only changes once the file is written.
func (s *Store) Update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	fn(&next)
	if err := s.save(next); err != nil {
		return err
	}
	s.state = next
	return nil
}
