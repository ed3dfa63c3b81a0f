package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKnownCorruptions(t *testing.T) {
	s, err := NewSet(DefaultKnownCorruptions...)
	require.NoError(t, err)

	for _, p := range []string{
		"user/Default/History.db-wal",
		"user/Default/History.db-shm",
		"root/android-data/data/data/pkg/databases/app.db-journal",
		"user/Cookies-journal",
		"user/Web Data-wal",
	} {
		assert.True(t, s.Match(p, false), p)
	}
	for _, p := range []string{"user/Cookies", "user/History.db", "user/wal"} {
		assert.False(t, s.Match(p, false), p)
	}
}

func TestSetFirstMatchWins(t *testing.T) {
	s, err := NewSet("!user/Keep-journal", "*-journal")
	require.NoError(t, err)

	assert.False(t, s.Match("user/Keep-journal", false))
	assert.True(t, s.Match("user/Other-journal", false))
	assert.Equal(t, []string{"!user/Keep-journal", "*-journal"}, s.Patterns())
	assert.Equal(t, 2, s.Len())
}

func TestNilSetMatchesNothing(t *testing.T) {
	var s *Set
	assert.False(t, s.Match("anything", false))
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Patterns())
}

func TestNewSetInvalid(t *testing.T) {
	_, err := NewSet("ok", "/")
	require.Error(t, err)
}
