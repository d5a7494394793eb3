package cmd

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/recent"
	"github.com/chris-regnier/moodlog/internal/session"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/storage/markdown"
)

const (
	testOwner = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	otherUser = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"
)

func setupTestStore(t *testing.T, dir string) storage.Storage {
	t.Helper()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// setupTestEnv points the package globals at a fresh markdown journal and
// resets flag state.
func setupTestEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	store = setupTestStore(t, dir)
	appConfig = &config.Config{
		Storage:  "markdown",
		DataDir:  dir,
		MaxWidth: 100,
		Search: config.SearchConfig{
			PageSize:      20,
			PreviewLength: 250,
			Timeout:       "5s",
			RecentLimit:   10,
		},
	}
	id, err := session.NewStatic(testOwner)
	if err != nil {
		t.Fatalf("creating identity: %v", err)
	}
	identity = id
	recentSearches = recent.New(dir, appConfig.Search.RecentLimit)
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	jsonOutput = false
	searchMood, searchFrom, searchTo = "", "", ""
	searchOffset, searchLimit = 0, 0
	showContentOnly = false
}

func addEntry(t *testing.T, id, owner, content string, m mood.Mood, at time.Time) {
	t.Helper()
	e := entry.Entry{ID: id, OwnerID: owner, Content: content, Mood: m, CreatedAt: at.UTC(), UpdatedAt: at.UTC()}
	if err := store.Create(e); err != nil {
		t.Fatalf("creating entry %s: %v", id, err)
	}
}

func may(d, h int) time.Time {
	return time.Date(2025, 5, d, h, 0, 0, 0, time.Local)
}
