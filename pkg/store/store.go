package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"swap-escrow/pkg/escrow"
)

const (
	DefaultStateFileName = ".swap-escrow.json"
)

// State is the full persisted system: the engine snapshot plus the ledger
// balances it settles against.
type State struct {
	Engine   escrow.State                 `json:"engine"`
	Balances map[string]map[string]uint64 `json:"balances"`
}

// Store handles persistence of the escrow state file.
type Store struct {
	filePath string
	mu       sync.Mutex
}

// NewStore creates a store for the given path, defaulting to
// ~/.swap-escrow.json when the path is empty.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStateFileName)
	}
	return &Store{filePath: filePath}, nil
}

// Load reads the persisted state. A missing file yields a zero state so the
// first command starts from scratch.
func (s *Store) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Balances: make(map[string]map[string]uint64)}, nil
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	if st.Balances == nil {
		st.Balances = make(map[string]map[string]uint64)
	}
	return &st, nil
}

// Save writes the state atomically: temp file first, then rename.
func (s *Store) Save(st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// GetFilePath returns the state file path.
func (s *Store) GetFilePath() string {
	return s.filePath
}
