package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc.def.ghi"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore_SaveRestrictsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, os.Chmod(path, 0o644))

	require.NoError(t, NewFileStore(path).Save("new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSession_LoginLogout(t *testing.T) {
	store := &MemoryStore{}
	s, err := New(store)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Login("  token-1 "))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "token-1", s.Token())

	persisted, _ := store.Load()
	assert.Equal(t, "token-1", persisted)

	next, err := s.Logout()
	require.NoError(t, err)
	assert.Equal(t, RouteLogin, next)
	assert.False(t, s.Authenticated())
	persisted, _ = store.Load()
	assert.Empty(t, persisted)
}

func TestSession_LoginRejectsEmptyToken(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Error(t, s.Login("   "))
	assert.False(t, s.Authenticated())
}

func TestSession_LoadsExistingToken(t *testing.T) {
	store := &MemoryStore{}
	require.NoError(t, store.Save("persisted"))

	s, err := New(store)
	require.NoError(t, err)
	assert.True(t, s.Authenticated(), "any non-empty stored value is accepted")
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Clear() error { return errors.New("disk full") }

func TestSession_InvalidateClearsMemoryEvenWhenStoreFails(t *testing.T) {
	store := &failingStore{}
	require.NoError(t, store.Save("t"))
	s, err := New(store)
	require.NoError(t, err)

	assert.Error(t, s.Invalidate())
	assert.False(t, s.Authenticated())
}

func TestSession_WithClock(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := New(nil, WithClock(classify.FixedClock(now)))
	require.NoError(t, err)
	assert.Equal(t, now, s.Clock().Now())
}
