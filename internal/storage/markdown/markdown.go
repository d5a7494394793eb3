package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/storage"
)

// Store implements storage.Storage using Markdown files with YAML front-matter.
// Entries live under <data_dir>/entries/<owner>/YYYY/MM/DD/<id>.md.
type Store struct {
	baseDir string
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	entriesDir := filepath.Join(dataDir, "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: entriesDir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) ownerDir(ownerID string) (string, error) {
	if ownerID == "" || ownerID != filepath.Base(ownerID) || strings.HasPrefix(ownerID, ".") {
		return "", fmt.Errorf("%w: invalid owner id %q", storage.ErrValidation, ownerID)
	}
	return filepath.Join(s.baseDir, ownerID), nil
}

func (s *Store) entryPath(e entry.Entry) (string, error) {
	dir, err := s.ownerDir(e.OwnerID)
	if err != nil {
		return "", err
	}
	t := e.CreatedAt.UTC()
	return filepath.Join(dir, t.Format("2006"), t.Format("01"), t.Format("02"), e.ID+".md"), nil
}

func (s *Store) marshal(e entry.Entry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", e.ID)
	fmt.Fprintf(&b, "owner_id: %s\n", e.OwnerID)
	if e.Mood != mood.None {
		fmt.Fprintf(&b, "mood: %s\n", e.Mood)
	}
	fmt.Fprintf(&b, "created_at: %s\n", e.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "updated_at: %s\n", e.UpdatedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	return []byte(b.String())
}

type frontMatter struct {
	ID        string `yaml:"id"`
	OwnerID   string `yaml:"owner_id"`
	Mood      string `yaml:"mood"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

func (s *Store) unmarshal(data []byte) (entry.Entry, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, fm.UpdatedAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}

	return entry.Entry{
		ID:        fm.ID,
		OwnerID:   fm.OwnerID,
		Content:   strings.TrimSpace(string(content)),
		Mood:      mood.Mood(fm.Mood),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// Create persists a new journal entry as a Markdown file.
func (s *Store) Create(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	path, err := s.entryPath(e)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: entry %s already exists", storage.ErrConflict, e.ID)
	}

	return s.atomicWrite(path, s.marshal(e))
}

// Get retrieves an entry by ID by scanning the owner's directory tree.
func (s *Store) Get(ownerID, id string) (entry.Entry, error) {
	dir, err := s.ownerDir(ownerID)
	if err != nil {
		return entry.Entry{}, storage.ErrNotFound
	}

	var found string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if !d.IsDir() && d.Name() == id+".md" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	if found == "" {
		return entry.Entry{}, storage.ErrNotFound
	}

	data, err := os.ReadFile(found)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return s.unmarshal(data)
}

// Search walks the owner's entries and evaluates q in process.
func (s *Store) Search(ctx context.Context, q storage.Query) ([]entry.Entry, error) {
	dir, err := s.ownerDir(q.OwnerID)
	if err != nil {
		return []entry.Entry{}, nil
	}

	var entries []entry.Entry
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}
		e, err := s.unmarshal(data)
		if err != nil {
			return nil // skip malformed files
		}
		if q.Matches(e) {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: searching entries: %v", storage.ErrStorage, err)
	}

	return q.Apply(entries), nil
}
