package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/storage/markdown"
	"github.com/chris-regnier/moodlog/internal/storage/sqlite"
)

const (
	owner = "7c1f0e1a-4a1e-4c2b-9d3e-2f6a8b9c0d1e"
	other = "0b6f3c2d-1e4a-4b5c-8d7e-9f0a1b2c3d4e"
)

type storageFactory func(t *testing.T) storage.Storage

func markdownFactory(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating markdown storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := sqlite.New(dir)
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeEntryAt(t *testing.T, ownerID, content string, m mood.Mood, at time.Time) entry.Entry {
	t.Helper()
	id, err := entry.NewID()
	if err != nil {
		t.Fatalf("generating ID: %v", err)
	}
	at = at.UTC().Truncate(time.Second)
	return entry.Entry{
		ID:        id,
		OwnerID:   ownerID,
		Content:   content,
		Mood:      m,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func mustCreate(t *testing.T, s storage.Storage, e entry.Entry) entry.Entry {
	t.Helper()
	if err := s.Create(e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return e
}

func ids(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func assertIDs(t *testing.T, got []entry.Entry, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func runContractTests(t *testing.T, name string, factory storageFactory) {
	ctx := context.Background()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run(name, func(t *testing.T) {
		t.Run("Create and Get", func(t *testing.T) {
			s := factory(t)
			e := mustCreate(t, s, makeEntryAt(t, owner, "Hello journal", mood.Happy, base))
			got, err := s.Get(owner, e.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Content != e.Content || got.Mood != mood.Happy || !got.CreatedAt.Equal(e.CreatedAt) {
				t.Errorf("got %+v, want %+v", got, e)
			}
		})

		t.Run("Get is owner scoped", func(t *testing.T) {
			s := factory(t)
			e := mustCreate(t, s, makeEntryAt(t, owner, "private", mood.None, base))
			if _, err := s.Get(other, e.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected ErrNotFound for other owner, got %v", err)
			}
		})

		t.Run("Create rejects blank content", func(t *testing.T) {
			s := factory(t)
			err := s.Create(makeEntryAt(t, owner, "   ", mood.None, base))
			if !errors.Is(err, storage.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})

		t.Run("Create duplicate", func(t *testing.T) {
			s := factory(t)
			e := mustCreate(t, s, makeEntryAt(t, owner, "once", mood.None, base))
			if err := s.Create(e); !errors.Is(err, storage.ErrConflict) {
				t.Errorf("expected ErrConflict, got %v", err)
			}
		})

		t.Run("Search empty store", func(t *testing.T) {
			s := factory(t)
			got, err := s.Search(ctx, storage.Query{OwnerID: owner})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected no entries, got %d", len(got))
			}
		})

		t.Run("Search keyword newest first", func(t *testing.T) {
			s := factory(t)
			a := mustCreate(t, s, makeEntryAt(t, owner, "Missed the deadline again", mood.Stressed, base))
			mustCreate(t, s, makeEntryAt(t, owner, "Happy day", mood.Happy, base.Add(time.Hour)))
			c := mustCreate(t, s, makeEntryAt(t, owner, "Deadline stress", mood.Anxious, base.Add(2*time.Hour)))
			mustCreate(t, s, makeEntryAt(t, other, "someone else's deadline", mood.None, base.Add(3*time.Hour)))

			got, err := s.Search(ctx, storage.Query{OwnerID: owner, Text: "deadline"})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			assertIDs(t, got, c.ID, a.ID)
		})

		t.Run("Search treats wildcards literally", func(t *testing.T) {
			s := factory(t)
			hit := mustCreate(t, s, makeEntryAt(t, owner, "saved 100% of it", mood.None, base))
			mustCreate(t, s, makeEntryAt(t, owner, "saved 1000 of it", mood.None, base.Add(time.Hour)))

			got, err := s.Search(ctx, storage.Query{OwnerID: owner, Text: "100%"})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			assertIDs(t, got, hit.ID)
		})

		t.Run("Search folds non-ASCII case", func(t *testing.T) {
			s := factory(t)
			summer := mustCreate(t, s, makeEntryAt(t, owner, "Un ÉTÉ difficile", mood.Sad, base))
			mustCreate(t, s, makeEntryAt(t, owner, "Un hiver calme", mood.Calm, base.Add(time.Hour)))

			for _, text := range []string{"été", "ÉTÉ", "Été"} {
				got, err := s.Search(ctx, storage.Query{OwnerID: owner, Text: text})
				if err != nil {
					t.Fatalf("Search(%q): %v", text, err)
				}
				assertIDs(t, got, summer.ID)
			}
		})

		t.Run("Search mood and inclusive range", func(t *testing.T) {
			s := factory(t)
			from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

			first := mustCreate(t, s, makeEntryAt(t, owner, "new year nerves", mood.Anxious, from))
			last := mustCreate(t, s, makeEntryAt(t, owner, "month end", mood.Anxious, to))
			mustCreate(t, s, makeEntryAt(t, owner, "calm january", mood.Calm, from.Add(48*time.Hour)))
			mustCreate(t, s, makeEntryAt(t, owner, "february worry", mood.Anxious, to.Add(time.Second)))
			mustCreate(t, s, makeEntryAt(t, owner, "december worry", mood.Anxious, from.Add(-time.Second)))

			got, err := s.Search(ctx, storage.Query{OwnerID: owner, Mood: mood.Anxious, From: &from, To: &to})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			assertIDs(t, got, last.ID, first.ID)
		})

		t.Run("Search paginates with stable tie-break", func(t *testing.T) {
			s := factory(t)
			var created []entry.Entry
			for i := 0; i < 5; i++ {
				created = append(created, mustCreate(t, s, makeEntryAt(t, owner, "same second", mood.None, base)))
			}
			storage.SortNewestFirst(created)

			page1, err := s.Search(ctx, storage.Query{OwnerID: owner, Limit: 2})
			if err != nil {
				t.Fatalf("Search page 1: %v", err)
			}
			page2, err := s.Search(ctx, storage.Query{OwnerID: owner, Offset: 2, Limit: 2})
			if err != nil {
				t.Fatalf("Search page 2: %v", err)
			}
			page3, err := s.Search(ctx, storage.Query{OwnerID: owner, Offset: 4, Limit: 2})
			if err != nil {
				t.Fatalf("Search page 3: %v", err)
			}
			all := append(append(page1, page2...), page3...)
			assertIDs(t, all, ids(created)...)
		})
	})
}

func TestMarkdownContract(t *testing.T) {
	runContractTests(t, "markdown", markdownFactory)
}

func TestSQLiteContract(t *testing.T) {
	runContractTests(t, "sqlite", sqliteFactory)
}
