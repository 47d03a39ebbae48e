package store

import "sync"

// BirthdayStore maps user IDs to "dd.mm" birthday strings.
type BirthdayStore struct {
	mu    sync.Mutex
	path  string
	dates map[string]string
}

// NewBirthdayStore loads the birthday snapshot from path.
func NewBirthdayStore(path string) *BirthdayStore {
	dates := Load[map[string]string](path)
	if dates == nil {
		dates = make(map[string]string)
	}
	return &BirthdayStore{path: path, dates: dates}
}

// Set stores the birthday for userID and persists.
func (s *BirthdayStore) Set(userID, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dates[userID] = date
	Save(s.path, s.dates)
}

// Remove deletes the birthday for userID, reporting whether one existed.
func (s *BirthdayStore) Remove(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dates[userID]; !ok {
		return false
	}
	delete(s.dates, userID)
	Save(s.path, s.dates)
	return true
}

// All returns a copy of the birthday map.
func (s *BirthdayStore) All() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.dates))
	for id, d := range s.dates {
		out[id] = d
	}
	return out
}

// Path returns the snapshot file path.
func (s *BirthdayStore) Path() string {
	return s.path
}
