package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

func newTestStore(t *testing.T) *Store[record] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	return NewStore[record](path, "record", 24*time.Hour)
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := []record{{Name: "one", ID: 1}, {Name: "two", ID: 2}}

	require.NoError(t, s.Save(in))
	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStaleness(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Now = func() time.Time { return base }
	require.NoError(t, s.Save([]record{{Name: "one", ID: 1}}))

	s.Now = func() time.Time { return base.Add(s.TTL - time.Second) }
	_, err := s.Load()
	assert.NoError(t, err, "one second inside the TTL must be fresh")

	s.Now = func() time.Time { return base.Add(s.TTL + time.Second) }
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrStale, "one second past the TTL must be stale")
}

func TestMissingFile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrStale)
}

func TestCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0600))
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrStale)
}

func TestKindMismatch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]record{{Name: "one", ID: 1}}))

	other := NewStore[record](s.Path, "other", s.TTL)
	_, err := other.Load()
	assert.ErrorIs(t, err, ErrStale)
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]record{{Name: "one", ID: 1}, {Name: "two", ID: 2}}))
	require.NoError(t, s.Save([]record{{Name: "three", ID: 3}}))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []record{{Name: "three", ID: 3}}, out)
}
