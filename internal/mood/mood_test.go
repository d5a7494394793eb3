package mood

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Mood
	}{
		{"happy", Happy},
		{"  Anxious ", Anxious},
		{"STRESSED", Stressed},
		{"", None},
		{"any", None},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("ecstatic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestNextCyclesThroughVocabulary(t *testing.T) {
	seen := map[Mood]bool{}
	m := None
	for i := 0; i <= len(All()); i++ {
		m = Next(m)
		seen[m] = true
	}
	assert.Equal(t, None, m, "should wrap back to None")
	for _, v := range All() {
		assert.True(t, seen[v], "missing %s", v)
	}
}

func TestNoneIsNotValid(t *testing.T) {
	assert.False(t, None.Valid())
	assert.Equal(t, "any", None.String())
}
