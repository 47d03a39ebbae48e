package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandValue(t *testing.T) {
	tests := []struct {
		name string
		hand []int
		want int
	}{
		{"simple sum", []int{2, 3, 4}, 9},
		{"face cards count ten", []int{10, 10}, 20},
		{"ace stays eleven under 21", []int{10, 11}, 21},
		{"ace drops to one on bust", []int{10, 5, 11}, 16},
		{"two aces soften to twelve", []int{11, 11}, 12},
		{"three tens with an ace", []int{10, 10, 11}, 21},
		{"empty hand", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandValue(tt.hand))
		})
	}
}

func TestNewBlackjackRound_DealsFromFullDeck(t *testing.T) {
	round := NewBlackjackRound("user", 50)

	assert.Len(t, round.Player, 2)
	assert.Len(t, round.Dealer, 2)
	assert.Len(t, round.Deck, 48, "52 cards minus the four dealt")
	assert.False(t, round.Done)
	assert.Equal(t, BlackjackInProgress, round.Outcome)
	assert.Equal(t, int64(50), round.Bet)
}

func TestBlackjackRound_Hit_BustLoses(t *testing.T) {
	round := &BlackjackRound{
		UserID: "user",
		Bet:    50,
		Deck:   []int{10},
		Player: []int{10, 9},
		Dealer: []int{10, 7},
	}

	round.Hit()
	require.True(t, round.Done, "29 is a bust")
	assert.Equal(t, BlackjackLoss, round.Outcome)
}

func TestBlackjackRound_Hit_UnderLimitContinues(t *testing.T) {
	round := &BlackjackRound{
		UserID: "user",
		Bet:    50,
		Deck:   []int{2},
		Player: []int{10, 5},
		Dealer: []int{10, 7},
	}

	round.Hit()
	assert.False(t, round.Done)
	assert.Equal(t, 17, HandValue(round.Player))
}

func TestBlackjackRound_Stand_DealerDrawsToSeventeen(t *testing.T) {
	round := &BlackjackRound{
		UserID: "user",
		Bet:    50,
		Deck:   []int{5, 4}, // drawn from the end
		Player: []int{10, 10},
		Dealer: []int{10, 2},
	}

	round.Stand()
	require.True(t, round.Done)
	// Dealer draws 4 (16), then 5 (21); 21 > 20 loses for the player.
	assert.Equal(t, 21, HandValue(round.Dealer))
	assert.Equal(t, BlackjackLoss, round.Outcome)
}

func TestBlackjackRound_Stand_DealerBustWins(t *testing.T) {
	round := &BlackjackRound{
		UserID: "user",
		Bet:    50,
		Deck:   []int{10},
		Player: []int{10, 8},
		Dealer: []int{10, 6},
	}

	round.Stand()
	require.True(t, round.Done)
	assert.Greater(t, HandValue(round.Dealer), 21)
	assert.Equal(t, BlackjackWin, round.Outcome)
}

func TestBlackjackRound_Stand_Push(t *testing.T) {
	round := &BlackjackRound{
		UserID: "user",
		Bet:    50,
		Deck:   []int{2},
		Player: []int{10, 8},
		Dealer: []int{10, 8},
	}

	round.Stand()
	require.True(t, round.Done)
	assert.Equal(t, BlackjackPush, round.Outcome)
}

func TestBlackjackRound_Stand_HigherHandWins(t *testing.T) {
	round := &BlackjackRound{
		UserID: "user",
		Bet:    50,
		Deck:   []int{2},
		Player: []int{10, 10},
		Dealer: []int{10, 8},
	}

	round.Stand()
	assert.Equal(t, BlackjackWin, round.Outcome)
}

func TestBlackjackRound_FinishedRoundIgnoresActions(t *testing.T) {
	round := &BlackjackRound{
		UserID:  "user",
		Bet:     50,
		Deck:    []int{10, 10},
		Player:  []int{10, 8},
		Dealer:  []int{10, 9},
		Done:    true,
		Outcome: BlackjackPush,
	}

	round.Hit()
	round.Stand()
	assert.Len(t, round.Player, 2)
	assert.Equal(t, BlackjackPush, round.Outcome)
}
