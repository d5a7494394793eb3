package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "moodlog.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// The pragma answers with the resulting mode, so it must be read as a row.
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			owner_id   TEXT NOT NULL,
			content    TEXT NOT NULL CHECK(length(trim(content)) > 0),
			content_fold TEXT NOT NULL DEFAULT '',
			mood       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			CHECK(created_at <= updated_at)
		);
		CREATE INDEX IF NOT EXISTS idx_entries_owner_created ON entries(owner_id, created_at DESC, id DESC);
		CREATE INDEX IF NOT EXISTS idx_entries_owner_mood ON entries(owner_id, mood);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return migrateContentFold(db)
}

// migrateContentFold adds and backfills content_fold on databases created
// before the column existed.
func migrateContentFold(db *sql.DB) error {
	rows, err := db.Query("SELECT name FROM pragma_table_info('entries')")
	if err != nil {
		return fmt.Errorf("%w: reading schema: %v", storage.ErrStorage, err)
	}
	found := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("%w: reading schema: %v", storage.ErrStorage, err)
		}
		if name == "content_fold" {
			found = true
		}
	}
	rows.Close()
	if found {
		return nil
	}

	if _, err := db.Exec("ALTER TABLE entries ADD COLUMN content_fold TEXT NOT NULL DEFAULT ''"); err != nil {
		return fmt.Errorf("%w: adding content_fold: %v", storage.ErrStorage, err)
	}

	type pending struct{ id, content string }
	var todo []pending
	rows, err = db.Query("SELECT id, content FROM entries")
	if err != nil {
		return fmt.Errorf("%w: backfilling content_fold: %v", storage.ErrStorage, err)
	}
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.content); err != nil {
			rows.Close()
			return fmt.Errorf("%w: backfilling content_fold: %v", storage.ErrStorage, err)
		}
		todo = append(todo, p)
	}
	rows.Close()

	for _, p := range todo {
		if _, err := db.Exec("UPDATE entries SET content_fold = ? WHERE id = ?", foldCase(p.content), p.id); err != nil {
			return fmt.Errorf("%w: backfilling content_fold: %v", storage.ErrStorage, err)
		}
	}
	return nil
}

// foldCase is the case folding shared by content_fold and search text,
// matching storage.Query.Matches.
func foldCase(s string) string {
	return strings.ToLower(s)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new journal entry.
func (s *Store) Create(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	_, err := s.db.Exec(
		"INSERT INTO entries (id, owner_id, content, content_fold, mood, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.ID,
		e.OwnerID,
		e.Content,
		foldCase(e.Content),
		string(e.Mood),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("%w: entry %s already exists", storage.ErrConflict, e.ID)
		}
		return fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
	}
	return nil
}

// Get retrieves an entry by ID, scoped to its owner.
func (s *Store) Get(ownerID, id string) (entry.Entry, error) {
	row := s.db.QueryRow(
		"SELECT id, owner_id, content, mood, created_at, updated_at FROM entries WHERE owner_id = ? AND id = ?",
		ownerID, id,
	)

	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: querying entry: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// Search runs q against the entries table.
func (s *Store) Search(ctx context.Context, q storage.Query) ([]entry.Entry, error) {
	query, args := buildSearchSQL(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: searching entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %v", storage.ErrStorage, err)
	}
	return entries, nil
}

// buildSearchSQL translates q into a parameterised SELECT. User text is only
// ever bound as an argument.
func buildSearchSQL(q storage.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT id, owner_id, content, mood, created_at, updated_at FROM entries WHERE owner_id = ?")
	args := []any{q.OwnerID}

	if q.Text != "" {
		// LIKE folds ASCII only; both sides are pre-folded so any script matches.
		b.WriteString(` AND content_fold LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(foldCase(q.Text))+"%")
	}
	if q.Mood != mood.None {
		b.WriteString(" AND mood = ?")
		args = append(args, string(q.Mood))
	}
	if q.From != nil {
		b.WriteString(" AND created_at >= ?")
		args = append(args, formatTime(*q.From))
	}
	if q.To != nil {
		b.WriteString(" AND created_at <= ?")
		args = append(args, formatTime(*q.To))
	}

	b.WriteString(" ORDER BY created_at DESC, id DESC")

	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	} else if q.Offset > 0 {
		b.WriteString(" LIMIT -1")
	}
	if q.Offset > 0 {
		b.WriteString(" OFFSET ?")
		args = append(args, q.Offset)
	}
	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// formatTime stores timestamps as second-precision UTC RFC3339 so that
// lexical order in SQL equals chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (entry.Entry, error) {
	var e entry.Entry
	var moodStr, createdStr, updatedStr string
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Content, &moodStr, &createdStr, &updatedStr); err != nil {
		return entry.Entry{}, err
	}
	e.Mood = mood.Mood(moodStr)

	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("parsing created_at: %v", err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("parsing updated_at: %v", err)
	}
	return e, nil
}
