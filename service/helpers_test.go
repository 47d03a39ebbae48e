package service

import (
	"path/filepath"
	"testing"

	"starosta/store"
)

// newTestProfiles returns a profile store backed by a throwaway snapshot.
func newTestProfiles(t *testing.T) *store.ProfileStore {
	t.Helper()
	return store.NewProfileStore(filepath.Join(t.TempDir(), "users.json"), 100)
}
