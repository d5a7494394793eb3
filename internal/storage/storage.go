package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrConflict   = errors.New("concurrent write conflict")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Query is a read against the entry store. Every predicate is ANDed; zero
// values mean "no constraint" except OwnerID, which is always applied.
// Results are ordered by CreatedAt descending, then ID descending.
type Query struct {
	OwnerID string     // required; entries of other owners never match
	Text    string     // case-insensitive substring of Content ("" = any)
	Mood    mood.Mood  // exact mood (None = any)
	From    *time.Time // inclusive lower bound on CreatedAt
	To      *time.Time // inclusive upper bound on CreatedAt
	Offset  int        // rows to skip
	Limit   int        // max rows (0 = no limit)
}

// Matches reports whether e satisfies every predicate of q. Offset and
// Limit are not considered.
func (q Query) Matches(e entry.Entry) bool {
	if q.OwnerID == "" || e.OwnerID != q.OwnerID {
		return false
	}
	if q.Text != "" && !strings.Contains(strings.ToLower(e.Content), strings.ToLower(q.Text)) {
		return false
	}
	if q.Mood != mood.None && e.Mood != q.Mood {
		return false
	}
	if q.From != nil && e.CreatedAt.Before(*q.From) {
		return false
	}
	if q.To != nil && e.CreatedAt.After(*q.To) {
		return false
	}
	return true
}

// Apply filters, orders and paginates entries in memory. Backends that
// cannot push predicates down to an engine use it to honour Query.
func (q Query) Apply(entries []entry.Entry) []entry.Entry {
	matched := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Matches(e) {
			matched = append(matched, e)
		}
	}
	SortNewestFirst(matched)

	if q.Offset >= len(matched) {
		return []entry.Entry{}
	}
	if q.Offset > 0 {
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched
}

// SortNewestFirst orders entries by CreatedAt descending with ID descending
// as the tie-break, so pages stay stable across requests.
func SortNewestFirst(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
}

// Storage defines the interface for journal entry persistence.
type Storage interface {
	// Create persists a new entry. Used by seeding and tests; the search
	// subsystem itself only reads.
	Create(e entry.Entry) error

	// Get returns the entry with the given id if it belongs to ownerID.
	// Returns ErrNotFound otherwise.
	Get(ownerID, id string) (entry.Entry, error)

	// Search returns the entries matching q, ordered newest first.
	Search(ctx context.Context, q Query) ([]entry.Entry, error)

	Close() error
}
