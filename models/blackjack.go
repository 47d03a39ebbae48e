package models

import "math/rand"

// BlackjackOutcome represents the result of a blackjack round
type BlackjackOutcome int

const (
	BlackjackInProgress BlackjackOutcome = iota
	BlackjackWin
	BlackjackLoss
	BlackjackPush
)

// BlackjackRound holds the state of a single blackjack round. Card values
// collapse ranks to 2-10, face cards to 10 and aces to 11; the soft-ace
// rule is applied when valuing a hand.
type BlackjackRound struct {
	UserID  string
	Bet     int64
	Deck    []int
	Player  []int
	Dealer  []int
	Done    bool
	Outcome BlackjackOutcome
}

// blackjackValues is the value multiset of one suit: 2-10, three tens for
// the face cards, and 11 for the ace.
var blackjackValues = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10, 11}

// NewBlackjackRound shuffles a fresh 52-card deck and deals two cards to
// each side.
func NewBlackjackRound(userID string, bet int64) *BlackjackRound {
	deck := make([]int, 0, 52)
	for i := 0; i < 4; i++ {
		deck = append(deck, blackjackValues...)
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	r := &BlackjackRound{UserID: userID, Bet: bet, Deck: deck}
	r.Player = append(r.Player, r.draw(), r.draw())
	r.Dealer = append(r.Dealer, r.draw(), r.draw())
	return r
}

func (r *BlackjackRound) draw() int {
	if len(r.Deck) == 0 {
		// Exhausted deck, treat further draws as tens
		return 10
	}
	card := r.Deck[len(r.Deck)-1]
	r.Deck = r.Deck[:len(r.Deck)-1]
	return card
}

// HandValue sums a hand, counting aces as 11 and reducing them by 10 each
// while the total busts and a reducible ace remains.
func HandValue(hand []int) int {
	sum := 0
	aces := 0
	for _, c := range hand {
		sum += c
		if c == 11 {
			aces++
		}
	}
	for sum > 21 && aces > 0 {
		sum -= 10
		aces--
	}
	return sum
}

// Hit draws one card for the player. A bust ends the round as a loss.
func (r *BlackjackRound) Hit() {
	if r.Done {
		return
	}
	r.Player = append(r.Player, r.draw())
	if HandValue(r.Player) > 21 {
		r.Done = true
		r.Outcome = BlackjackLoss
	}
}

// Stand ends the player's turn: the dealer draws while under 17, then the
// round is scored.
func (r *BlackjackRound) Stand() {
	if r.Done {
		return
	}
	for HandValue(r.Dealer) < 17 && len(r.Deck) > 0 {
		r.Dealer = append(r.Dealer, r.draw())
	}
	player := HandValue(r.Player)
	dealer := HandValue(r.Dealer)
	r.Done = true
	switch {
	case dealer > 21 || player > dealer:
		r.Outcome = BlackjackWin
	case player < dealer:
		r.Outcome = BlackjackLoss
	default:
		r.Outcome = BlackjackPush
	}
}
