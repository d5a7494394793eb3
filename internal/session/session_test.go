package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatic(t *testing.T) {
	p, err := NewStatic("7C1F0E1A-4A1E-4C2B-9D3E-2F6A8B9C0D1E")
	require.NoError(t, err)

	id, err := p.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7c1f0e1a-4a1e-4c2b-9d3e-2f6a8b9c0d1e", id, "ids are canonicalised")
}

func TestNewStaticRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "alice", "../../etc", "00000000-0000-0000-0000-000000000000"} {
		_, err := NewStatic(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrNoIdentity), bad)
	}
}

func TestFromConfigDerivesStableID(t *testing.T) {
	a, err := FromConfig("")
	require.NoError(t, err)
	b, err := FromConfig("")
	require.NoError(t, err)

	idA, _ := a.CurrentUser(context.Background())
	idB, _ := b.CurrentUser(context.Background())
	assert.Equal(t, idA, idB)
	assert.NotEmpty(t, idA)
}

func TestNilStatic(t *testing.T) {
	var s *Static
	_, err := s.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNoIdentity)
}
