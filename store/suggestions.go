package store

import (
	"sync"

	"starosta/models"
)

// SuggestionStore owns the active suggestion map keyed by message ID.
// Resolved suggestions are deleted and subsequent lookups fail.
type SuggestionStore struct {
	mu    sync.Mutex
	path  string
	items map[string]*models.Suggestion
}

// NewSuggestionStore loads the suggestion snapshot from path.
func NewSuggestionStore(path string) *SuggestionStore {
	items := Load[map[string]*models.Suggestion](path)
	if items == nil {
		items = make(map[string]*models.Suggestion)
	}
	return &SuggestionStore{path: path, items: items}
}

// Put inserts or replaces a suggestion and persists the snapshot.
func (s *SuggestionStore) Put(sg *models.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sg.MessageID] = sg
	Save(s.path, s.items)
}

// Get returns a copy of the suggestion with the given message ID.
func (s *SuggestionStore) Get(messageID string) (models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sg, ok := s.items[messageID]
	if !ok {
		return models.Suggestion{}, ErrNotFound
	}
	return *sg, nil
}

// Update runs fn against the stored suggestion inside the store lock and
// persists on success. A fn error aborts without writing; an absent record
// yields ErrNotFound. The updated copy is returned.
func (s *SuggestionStore) Update(messageID string, fn func(sg *models.Suggestion) error) (models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sg, ok := s.items[messageID]
	if !ok {
		return models.Suggestion{}, ErrNotFound
	}
	if err := fn(sg); err != nil {
		return models.Suggestion{}, err
	}
	Save(s.path, s.items)
	return *sg, nil
}

// Delete removes a suggestion from the active set and persists.
func (s *SuggestionStore) Delete(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, messageID)
	Save(s.path, s.items)
}

// Count returns the number of active suggestions.
func (s *SuggestionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
