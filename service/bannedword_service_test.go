package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"starosta/store"
)

func newTestBannedWords(t *testing.T) BannedWordService {
	t.Helper()
	return NewBannedWordService(store.NewBannedWordStore(filepath.Join(t.TempDir(), "banned_words.json")))
}

func TestBannedWordService_AddNormalizes(t *testing.T) {
	svc := newTestBannedWords(t)

	assert.True(t, svc.Add("  Gossip "))
	assert.False(t, svc.Add("gossip"), "case variants collapse to one entry")
	assert.False(t, svc.Add("   "), "blank input is rejected")
	assert.Equal(t, []string{"gossip"}, svc.List())
}

func TestBannedWordService_Match_WordBoundaries(t *testing.T) {
	svc := newTestBannedWords(t)
	svc.Add("grass")

	word, ok := svc.Match("The GRASS is always greener")
	assert.True(t, ok, "matching is case-insensitive")
	assert.Equal(t, "grass", word)

	_, ok = svc.Match("a grasshopper jumped by")
	assert.False(t, ok, "substrings inside longer words do not match")

	word, ok = svc.Match("grass!")
	assert.True(t, ok, "punctuation is a word boundary")
	assert.Equal(t, "grass", word)

	_, ok = svc.Match("nothing suspicious here")
	assert.False(t, ok)
}

func TestBannedWordService_Remove(t *testing.T) {
	svc := newTestBannedWords(t)
	svc.Add("gossip")

	assert.NoError(t, svc.Remove("GOSSIP"))
	assert.ErrorIs(t, svc.Remove("gossip"), ErrNotFound)

	_, ok := svc.Match("gossip everywhere")
	assert.False(t, ok, "removed words stop matching")
}

func TestBannedWordService_List_Sorted(t *testing.T) {
	svc := newTestBannedWords(t)
	svc.Add("weeds")
	svc.Add("gossip")
	svc.Add("mud")

	assert.Equal(t, []string{"gossip", "mud", "weeds"}, svc.List())
}
