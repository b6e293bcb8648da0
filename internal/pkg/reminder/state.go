package reminder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// State holds the non-authoritative reminder flags. They only drive the
// "archive last month" prompt; correctness of archives never depends on them.
type State struct {
	LastArchivedMonth string `json:"last_archived_month"` // "YYYY-MM"
	LastCheckDate     string `json:"last_check_date"`     // "YYYY-MM-DD"
}

// Store is a file-backed key-value holder for State.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing file yields the zero state.
func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to read reminder state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		// Corrupt state is not worth failing over; start fresh.
		return State{}, nil
	}
	return st, nil
}

func (s *Store) save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reminder state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write reminder state: %w", err)
	}
	return nil
}

// MarkArchived records that the given "YYYY-MM" month has been archived.
func (s *Store) MarkArchived(month string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	st.LastArchivedMonth = month
	return s.save(st)
}

// TouchCheck records the date of the last reminder check.
func (s *Store) TouchCheck(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	st.LastCheckDate = date
	return s.save(st)
}
