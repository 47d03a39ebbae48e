package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starosta/models"
	"starosta/store"
	"starosta/store/testutil"
)

func newTestSuggestions(t *testing.T) SuggestionService {
	t.Helper()
	dir := t.TempDir()
	suggestions := store.NewSuggestionStore(filepath.Join(dir, "suggestions_data.json"))
	channels := store.NewSuggestionChannelStore(filepath.Join(dir, "suggestions_channels.json"))
	return NewSuggestionService(suggestions, channels)
}

func TestSuggestionService_ChannelToggle(t *testing.T) {
	svc := newTestSuggestions(t)
	channelID := testutil.UserID()

	assert.False(t, svc.IsEnabledChannel(channelID))
	assert.True(t, svc.EnableChannel(channelID))
	assert.False(t, svc.EnableChannel(channelID), "second enable reports already enabled")
	assert.True(t, svc.IsEnabledChannel(channelID))
	assert.True(t, svc.DisableChannel(channelID))
	assert.False(t, svc.DisableChannel(channelID))
	assert.False(t, svc.IsEnabledChannel(channelID))
}

func TestSuggestionService_CreateAndGet(t *testing.T) {
	svc := newTestSuggestions(t)
	author := testutil.UserID()

	created := svc.Create("msg1", "chan1", author, "maria", "more fairs", time.Now())
	assert.Equal(t, models.SuggestionPending, created.Status)
	assert.Equal(t, 0, created.ApprovalPercent(), "no votes yet")

	got, err := svc.Get("msg1")
	require.NoError(t, err)
	assert.Equal(t, "more fairs", got.Content)
	assert.Equal(t, author, got.AuthorID)
}

func TestSuggestionService_Vote(t *testing.T) {
	svc := newTestSuggestions(t)
	author := testutil.UserID()
	svc.Create("msg1", "chan1", author, "maria", "more fairs", time.Now())

	voter := testutil.UserID()
	sg, err := svc.Vote("msg1", voter, models.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, 1, sg.VotesFor)
	assert.Equal(t, 0, sg.VotesAgainst)
	assert.Equal(t, 100, sg.ApprovalPercent())
}

func TestSuggestionService_Vote_AuthorCannotVote(t *testing.T) {
	svc := newTestSuggestions(t)
	author := testutil.UserID()
	svc.Create("msg1", "chan1", author, "maria", "more fairs", time.Now())

	_, err := svc.Vote("msg1", author, models.VoteLike)
	assert.ErrorIs(t, err, ErrPermission)
}

func TestSuggestionService_Vote_NoSwitchingOrRepeats(t *testing.T) {
	svc := newTestSuggestions(t)
	svc.Create("msg1", "chan1", testutil.UserID(), "maria", "more fairs", time.Now())
	voter := testutil.UserID()

	_, err := svc.Vote("msg1", voter, models.VoteLike)
	require.NoError(t, err)

	_, err = svc.Vote("msg1", voter, models.VoteLike)
	assert.ErrorIs(t, err, ErrDuplicateVote, "same choice again")

	_, err = svc.Vote("msg1", voter, models.VoteDislike)
	assert.ErrorIs(t, err, ErrDuplicateVote, "switching sides is not allowed")

	sg, err := svc.Get("msg1")
	require.NoError(t, err)
	assert.Equal(t, 1, sg.VotesFor)
	assert.Equal(t, 0, sg.VotesAgainst)
}

func TestSuggestionService_ApprovalPercentFloors(t *testing.T) {
	svc := newTestSuggestions(t)
	svc.Create("msg1", "chan1", testutil.UserID(), "maria", "more fairs", time.Now())

	_, err := svc.Vote("msg1", testutil.UserID(), models.VoteLike)
	require.NoError(t, err)
	_, err = svc.Vote("msg1", testutil.UserID(), models.VoteLike)
	require.NoError(t, err)
	sg, err := svc.Vote("msg1", testutil.UserID(), models.VoteDislike)
	require.NoError(t, err)

	// 2/3 = 66.67 floors to 66.
	assert.Equal(t, 66, sg.ApprovalPercent())
}

func TestSuggestionService_Edit(t *testing.T) {
	svc := newTestSuggestions(t)
	author := testutil.UserID()
	svc.Create("msg1", "chan1", author, "maria", "more fairs", time.Now())

	_, err := svc.Vote("msg1", testutil.UserID(), models.VoteLike)
	require.NoError(t, err)

	sg, err := svc.Edit("msg1", author, "more fairs and a market")
	require.NoError(t, err)
	assert.Equal(t, "more fairs and a market", sg.Content)
	assert.Equal(t, 1, sg.VotesFor, "votes survive edits")
}

func TestSuggestionService_Edit_OnlyAuthor(t *testing.T) {
	svc := newTestSuggestions(t)
	svc.Create("msg1", "chan1", testutil.UserID(), "maria", "more fairs", time.Now())

	_, err := svc.Edit("msg1", testutil.UserID(), "hijacked")
	assert.ErrorIs(t, err, ErrPermission)
}

func TestSuggestionService_Resolve(t *testing.T) {
	svc := newTestSuggestions(t)
	svc.Create("msg1", "chan1", testutil.UserID(), "maria", "more fairs", time.Now())

	sg, err := svc.Resolve("msg1", models.SuggestionApproved)
	require.NoError(t, err)
	assert.Equal(t, models.SuggestionApproved, sg.Status)
	assert.True(t, sg.IsResolved())

	// The record leaves the active set: lookups and votes now fail.
	_, err = svc.Get("msg1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Vote("msg1", testutil.UserID(), models.VoteLike)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Resolve("msg1", models.SuggestionRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestionService_Vote_UnknownSuggestion(t *testing.T) {
	svc := newTestSuggestions(t)

	_, err := svc.Vote("missing", testutil.UserID(), models.VoteLike)
	assert.ErrorIs(t, err, ErrNotFound)
}
