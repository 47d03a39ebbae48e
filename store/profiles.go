package store

import (
	"sync"

	"starosta/models"
)

// ProfileStore owns the user profile map. All mutation happens inside the
// store lock through read-modify-write closures; callers never hold the
// lock across outbound I/O.
type ProfileStore struct {
	mu            sync.Mutex
	path          string
	startingChips int64
	profiles      map[string]*models.UserProfile
}

// NewProfileStore loads the profile snapshot from path.
func NewProfileStore(path string, startingChips int64) *ProfileStore {
	profiles := Load[map[string]*models.UserProfile](path)
	if profiles == nil {
		profiles = make(map[string]*models.UserProfile)
	}
	return &ProfileStore{path: path, startingChips: startingChips, profiles: profiles}
}

func (s *ProfileStore) getOrCreateLocked(userID string) *models.UserProfile {
	p, ok := s.profiles[userID]
	if !ok {
		p = models.NewUserProfile(s.startingChips)
		s.profiles[userID] = p
	}
	return p
}

// Update runs fn against the profile for userID, creating it with defaults
// if absent, and persists the snapshot afterwards.
func (s *ProfileStore) Update(userID string, fn func(p *models.UserProfile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getOrCreateLocked(userID))
	Save(s.path, s.profiles)
}

// UpdateErr is Update for fallible mutations: when fn returns an error the
// snapshot is not written and the error is returned unchanged.
func (s *ProfileStore) UpdateErr(userID string, fn func(p *models.UserProfile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.getOrCreateLocked(userID)); err != nil {
		return err
	}
	Save(s.path, s.profiles)
	return nil
}

// Mutate runs fn without persisting. Used on hot paths (per-message XP,
// anti-spam bookkeeping) where a later Flush or Update writes the snapshot.
func (s *ProfileStore) Mutate(userID string, fn func(p *models.UserProfile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getOrCreateLocked(userID))
}

// Flush persists the current snapshot.
func (s *ProfileStore) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	Save(s.path, s.profiles)
}

// Get returns a copy of the profile for userID.
func (s *ProfileStore) Get(userID string) (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return models.UserProfile{}, false
	}
	return *p, true
}

// Default returns a fresh profile with the configured starting state,
// matching what Update would create for an unknown user.
func (s *ProfileStore) Default() models.UserProfile {
	return *models.NewUserProfile(s.startingChips)
}

// All returns a copy of every profile keyed by user ID.
func (s *ProfileStore) All() map[string]models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.UserProfile, len(s.profiles))
	for id, p := range s.profiles {
		out[id] = *p
	}
	return out
}

// Path returns the snapshot file path.
func (s *ProfileStore) Path() string {
	return s.path
}
