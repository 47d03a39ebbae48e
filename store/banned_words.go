package store

import (
	"sort"
	"sync"
)

// BannedWordStore owns the banned word set. Words are stored normalized to
// lowercase; the snapshot is a sorted JSON array.
type BannedWordStore struct {
	mu    sync.Mutex
	path  string
	words map[string]struct{}
}

// NewBannedWordStore loads the banned word snapshot from path.
func NewBannedWordStore(path string) *BannedWordStore {
	list := Load[[]string](path)
	words := make(map[string]struct{}, len(list))
	for _, w := range list {
		words[w] = struct{}{}
	}
	return &BannedWordStore{path: path, words: words}
}

func (s *BannedWordStore) saveLocked() {
	Save(s.path, s.sortedLocked())
}

func (s *BannedWordStore) sortedLocked() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Add inserts a word, reporting whether it was new.
func (s *BannedWordStore) Add(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.words[word]; ok {
		return false
	}
	s.words[word] = struct{}{}
	s.saveLocked()
	return true
}

// Remove deletes a word, reporting whether it was present.
func (s *BannedWordStore) Remove(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.words[word]; !ok {
		return false
	}
	delete(s.words, word)
	s.saveLocked()
	return true
}

// Words returns the sorted word list.
func (s *BannedWordStore) Words() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}
