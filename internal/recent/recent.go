// Package recent keeps a short, deduplicated, most-recent-first list of past
// search keywords in a JSON file that survives restarts.
package recent

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultLimit is the number of keywords kept when none is configured.
	DefaultLimit = 10

	fileName = "recent-searches.json"
)

// ErrStore wraps failures reading or writing the recent-search file.
var ErrStore = errors.New("recent search store error")

// Entry is a remembered keyword and when it was last used.
type Entry struct {
	Query  string    `json:"query"`
	UsedAt time.Time `json:"used_at"`
}

// Store is the durable recent-search list. The file is read lazily on first
// use; every mutation rewrites it atomically.
type Store struct {
	path  string
	limit int
	now   func() time.Time

	mu      sync.Mutex
	loaded  bool
	entries []Entry
}

// New returns a Store kept in dataDir. A non-positive limit uses DefaultLimit.
func New(dataDir string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		path:  filepath.Join(dataDir, fileName),
		limit: limit,
		now:   time.Now,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Record moves keyword to the front of the list, inserting it if absent.
// Comparison ignores case and surrounding whitespace; the trimmed original
// casing of the latest use is what gets stored. Blank keywords are ignored.
func (s *Store) Record(keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	key := strings.ToLower(keyword)
	next := make([]Entry, 0, len(s.entries)+1)
	next = append(next, Entry{Query: keyword, UsedAt: s.now().UTC()})
	for _, e := range s.entries {
		if strings.ToLower(e.Query) != key {
			next = append(next, e)
		}
	}
	if len(next) > s.limit {
		next = next[:s.limit]
	}

	if err := s.save(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// List returns the stored keywords, most recent first.
func (s *Store) List() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Query
	}
	return out, nil
}

// Entries returns the stored entries, most recent first.
func (s *Store) Entries() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Clear forgets every keyword.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing %s: %v", ErrStore, s.path, err)
	}
	s.entries = nil
	s.loaded = true
	return nil
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", ErrStore, s.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrStore, s.path, err)
	}
	s.entries = normalize(entries, s.limit)
	s.loaded = true
	return nil
}

// normalize enforces the list invariants on data read from disk, which may
// have been edited by hand or written with a larger limit.
func normalize(entries []Entry, limit int) []Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Query = strings.TrimSpace(e.Query)
		key := strings.ToLower(e.Query)
		if e.Query == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *Store) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", ErrStore, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", ErrStore, err)
	}
	tmp, err := os.CreateTemp(dir, ".recent-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrStore, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrStore, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrStore, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: setting permissions: %v", ErrStore, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", ErrStore, err)
	}
	return nil
}
