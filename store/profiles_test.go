package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starosta/models"
)

func TestProfileStore_MissingSnapshotStartsFresh(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "users.json"), 100)

	_, ok := s.Get("anyone")
	assert.False(t, ok)
	assert.Equal(t, int64(100), s.Default().Chips)
	assert.Empty(t, s.All())
}

func TestProfileStore_UpdateCreatesWithDefaults(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "users.json"), 100)

	s.Update("u1", func(p *models.UserProfile) {
		p.XP = 10
	})

	p, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, int64(10), p.XP)
	assert.Equal(t, int64(100), p.Chips, "new profiles get the starting balance")
}

func TestProfileStore_PersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s := NewProfileStore(path, 100)
	s.Update("u1", func(p *models.UserProfile) {
		p.XP = 42
		p.Level = 3
		p.VoiceMinutes = 7
		p.Chips = 555
		p.BoosterX2Until = 12345
	})

	reloaded := NewProfileStore(path, 100)
	p, ok := reloaded.Get("u1")
	require.True(t, ok)
	assert.Equal(t, int64(42), p.XP)
	assert.Equal(t, int64(3), p.Level)
	assert.Equal(t, int64(7), p.VoiceMinutes)
	assert.Equal(t, int64(555), p.Chips)
	assert.Equal(t, int64(12345), p.BoosterX2Until)
}

func TestProfileStore_SpamStateIsTransient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s := NewProfileStore(path, 100)
	s.Update("u1", func(p *models.UserProfile) {
		p.LastMessageAt = 999
		p.SpamCounter = 4
		p.BlockedUntil = 888
	})

	reloaded := NewProfileStore(path, 100)
	p, ok := reloaded.Get("u1")
	require.True(t, ok)
	assert.Zero(t, p.LastMessageAt)
	assert.Zero(t, p.SpamCounter)
	assert.Zero(t, p.BlockedUntil)
}

func TestProfileStore_MutateSkipsSaveUntilFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s := NewProfileStore(path, 100)
	s.Mutate("u1", func(p *models.UserProfile) {
		p.XP = 42
	})

	// Mutate is the hot path, nothing hits disk yet.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	s.Flush()
	reloaded := NewProfileStore(path, 100)
	p, ok := reloaded.Get("u1")
	require.True(t, ok)
	assert.Equal(t, int64(42), p.XP)
}

func TestProfileStore_UpdateErrAbortsWithoutSaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s := NewProfileStore(path, 100)
	err := s.UpdateErr("u1", func(p *models.UserProfile) error {
		p.Chips = 0
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed mutations never persist")
}

func TestProfileStore_UnparsableSnapshotFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewProfileStore(path, 100)
	assert.Empty(t, s.All())
	assert.Equal(t, int64(100), s.Default().Chips)
}

func TestProfileStore_GetReturnsCopy(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "users.json"), 100)
	s.Update("u1", func(p *models.UserProfile) {
		p.XP = 10
	})

	p, _ := s.Get("u1")
	p.XP = 9999

	again, _ := s.Get("u1")
	assert.Equal(t, int64(10), again.XP, "callers cannot mutate stored state")
}
