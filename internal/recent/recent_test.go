package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupAndOrdering(t *testing.T) {
	s := New(t.TempDir(), 10)

	require.NoError(t, s.Record("stress"))
	require.NoError(t, s.Record("work"))
	require.NoError(t, s.Record("Stress"))

	got, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Stress", "work"}, got)
}

func TestTrimsAndIgnoresBlank(t *testing.T) {
	s := New(t.TempDir(), 10)

	require.NoError(t, s.Record("  sleep  "))
	require.NoError(t, s.Record("   "))
	require.NoError(t, s.Record(""))

	got, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sleep"}, got)
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := New(t.TempDir(), 3)

	for i := 0; i < 20; i++ {
		require.NoError(t, s.Record(fmt.Sprintf("q%d", i)))
		got, err := s.List()
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), 3)
	}

	got, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"q19", "q18", "q17"}, got)
}

func TestReRecordUpdatesTimestamp(t *testing.T) {
	s := New(t.TempDir(), 10)
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	require.NoError(t, s.Record("work"))
	clock = clock.Add(time.Hour)
	require.NoError(t, s.Record("other"))
	clock = clock.Add(time.Hour)
	require.NoError(t, s.Record("WORK"))

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "WORK", entries[0].Query)
	assert.True(t, entries[0].UsedAt.Equal(clock))
}

func TestPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first := New(dir, 10)
	require.NoError(t, first.Record("anxious"))
	require.NoError(t, first.Record("deadline"))

	second := New(dir, 10)
	got, err := second.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"deadline", "anxious"}, got)

	info, err := os.Stat(second.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, 10)
	require.NoError(t, s.Record("work"))
	require.NoError(t, s.Clear())

	got, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, got)

	reopened, err := New(dir, 10).List()
	require.NoError(t, err)
	assert.Empty(t, reopened)

	require.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestLoadNormalizesHandEditedFile(t *testing.T) {
	dir := t.TempDir()
	raw := `[
  {"query": "Work", "used_at": "2025-01-03T00:00:00Z"},
  {"query": " work ", "used_at": "2025-01-02T00:00:00Z"},
  {"query": "", "used_at": "2025-01-02T00:00:00Z"},
  {"query": "sleep", "used_at": "2025-01-01T00:00:00Z"},
  {"query": "gym", "used_at": "2024-12-31T00:00:00Z"}
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(raw), 0600))

	got, err := New(dir, 2).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Work", "sleep"}, got)
}

func TestCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0600))

	_, err := New(dir, 10).List()
	assert.ErrorIs(t, err, ErrStore)
}
