// Package history persists completed downloads as a JSON array, most recent first.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/areavii/av-downloader/internal/model"
	"github.com/areavii/av-downloader/internal/platform"
)

// File layout
const (
	FileName       = "history.json"
	FilePermission = 0644
	JSONIndent     = "    "
)

// Store reads and rewrites the history file
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// DefaultPath returns history.json inside the per-user config directory
func DefaultPath() (string, error) {
	dir, err := platform.GetAppConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Path returns the history file location
func (s *Store) Path() string {
	return s.path
}

// Load returns all records. A missing or malformed file yields an empty history.
func (s *Store) Load() ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add prepends a record for info and rewrites the file
func (s *Store) Add(info *model.VideoInfo) (model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return model.HistoryEntry{}, err
	}

	entry := model.NewHistoryEntry(info, s.now())
	entries = append([]model.HistoryEntry{entry}, entries...)

	if err := s.save(entries); err != nil {
		return model.HistoryEntry{}, err
	}
	return entry, nil
}

// Clear deletes the history file
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *Store) load() ([]model.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("History file %s is malformed, starting empty: %v", s.path, err)
		return []model.HistoryEntry{}, nil
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}

func (s *Store) save(entries []model.HistoryEntry) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", JSONIndent)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), FilePermission); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
