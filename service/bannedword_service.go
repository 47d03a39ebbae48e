package service

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"starosta/store"
)

type bannedWordService struct {
	words *store.BannedWordStore

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewBannedWordService creates a new banned word service
func NewBannedWordService(words *store.BannedWordStore) BannedWordService {
	s := &bannedWordService{
		words:    words,
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, w := range words.Words() {
		s.patterns[w] = wordPattern(w)
	}
	return s
}

// wordPattern matches the word on word boundaries so that substrings of
// longer words are left alone.
func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(word)))
}

func (s *bannedWordService) Add(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	if !s.words.Add(word) {
		return false
	}
	s.mu.Lock()
	s.patterns[word] = wordPattern(word)
	s.mu.Unlock()
	return true
}

func (s *bannedWordService) Remove(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if !s.words.Remove(word) {
		return ErrNotFound
	}
	s.mu.Lock()
	delete(s.patterns, word)
	s.mu.Unlock()
	return nil
}

func (s *bannedWordService) List() []string {
	return s.words.Words()
}

func (s *bannedWordService) Match(content string) (string, bool) {
	lowered := strings.ToLower(content)
	s.mu.Lock()
	defer s.mu.Unlock()
	for word, pattern := range s.patterns {
		if pattern.MatchString(lowered) {
			return word, true
		}
	}
	return "", false
}
