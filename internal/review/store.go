package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// HistoryFileVersion is bumped when the history schema changes incompatibly
const HistoryFileVersion = 1

// Record captures one completed review run
type Record struct {
	// RunID uniquely identifies the review run
	RunID string `json:"run_id"`

	// ImagePath is the source image that was reviewed
	ImagePath string `json:"image_path"`

	// ReportPath is the generated PDF report, empty if generation failed
	ReportPath string `json:"report_path,omitempty"`

	// IssueCount is the size of the merged issue list
	IssueCount int `json:"issue_count"`

	// AcceptedCount is how many corrections the reviewer accepted
	AcceptedCount int `json:"accepted_count"`

	// CompletedAt is when the review reached its terminal state
	CompletedAt time.Time `json:"completed_at"`
}

// History is the on-disk shape of the review history file
type History struct {
	Version int      `json:"version"`
	Records []Record `json:"records"`
}

// Store persists completed review runs to a JSON file. Writes are atomic
// (temp file + rename) and the store is safe for concurrent use.
type Store struct {
	history  *History
	filePath string
	mu       sync.RWMutex
}

// NewStore creates a store backed by the given file path
func NewStore(filePath string) *Store {
	return &Store{
		history:  &History{Version: HistoryFileVersion},
		filePath: filePath,
	}
}

// Load reads the history file. A missing file yields an empty history,
// not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		s.history = &History{Version: HistoryFileVersion}
		return nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	var history History
	if err := json.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("failed to parse history file: %w", err)
	}
	if history.Version != HistoryFileVersion {
		return fmt.Errorf("unsupported history file version %d (expected %d)", history.Version, HistoryFileVersion)
	}

	s.history = &history
	return nil
}

// Save writes the history to disk atomically
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp history file: %w", err)
	}
	if err := os.Rename(tmpFile, s.filePath); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp history file: %w", err)
	}

	return nil
}

// Append adds a completed run to the history
func (s *Store) Append(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Records = append(s.history.Records, rec)
}

// Records returns all recorded runs, most recent first
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.history.Records))
	copy(out, s.history.Records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}

// Count returns the number of recorded runs
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history.Records)
}

// LoadOrCreate loads an existing history file or initializes a fresh one
func LoadOrCreate(filePath string) (*Store, error) {
	store := NewStore(filePath)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}
