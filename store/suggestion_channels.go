package store

import (
	"sort"
	"sync"
)

// SuggestionChannelStore owns the set of channels where posting converts a
// message into a suggestion.
type SuggestionChannelStore struct {
	mu       sync.Mutex
	path     string
	channels map[string]struct{}
}

// NewSuggestionChannelStore loads the channel snapshot from path.
func NewSuggestionChannelStore(path string) *SuggestionChannelStore {
	list := Load[[]string](path)
	channels := make(map[string]struct{}, len(list))
	for _, c := range list {
		channels[c] = struct{}{}
	}
	return &SuggestionChannelStore{path: path, channels: channels}
}

func (s *SuggestionChannelStore) saveLocked() {
	out := make([]string, 0, len(s.channels))
	for c := range s.channels {
		out = append(out, c)
	}
	sort.Strings(out)
	Save(s.path, out)
}

// Add enables a channel, reporting whether it was newly added.
func (s *SuggestionChannelStore) Add(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[channelID]; ok {
		return false
	}
	s.channels[channelID] = struct{}{}
	s.saveLocked()
	return true
}

// Remove disables a channel, reporting whether it was present.
func (s *SuggestionChannelStore) Remove(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[channelID]; !ok {
		return false
	}
	delete(s.channels, channelID)
	s.saveLocked()
	return true
}

// Contains reports whether channelID is an enabled suggestion channel.
func (s *SuggestionChannelStore) Contains(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.channels[channelID]
	return ok
}
