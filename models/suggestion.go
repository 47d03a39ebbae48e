package models

import "fmt"

// SuggestionStatus represents the lifecycle state of a suggestion
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// VoteChoice is a vote cast on a suggestion
type VoteChoice string

const (
	VoteLike    VoteChoice = "like"
	VoteDislike VoteChoice = "dislike"
)

// Suggestion represents a community idea tracked through voting until an
// administrator approves or rejects it. The ID equals the posted message ID.
type Suggestion struct {
	MessageID    string           `json:"message_id"`
	ChannelID    string           `json:"channel_id"`
	AuthorID     string           `json:"author_id"`
	AuthorName   string           `json:"author_name"`
	Content      string           `json:"content"`
	Status       SuggestionStatus `json:"status"`
	VotesFor     int              `json:"votes_for"`
	VotesAgainst int              `json:"votes_against"`
	VotedUsers   []string         `json:"voted_users"`
	CreatedAt    int64            `json:"timestamp"`
}

func voteMarker(userID string, choice VoteChoice) string {
	return fmt.Sprintf("%s:%s", userID, choice)
}

// HasVoted reports whether userID already holds a marker for the given choice.
func (s *Suggestion) HasVoted(userID string, choice VoteChoice) bool {
	marker := voteMarker(userID, choice)
	for _, v := range s.VotedUsers {
		if v == marker {
			return true
		}
	}
	return false
}

// RecordVote appends the voter's marker and increments the matching counter.
func (s *Suggestion) RecordVote(userID string, choice VoteChoice) {
	s.VotedUsers = append(s.VotedUsers, voteMarker(userID, choice))
	if choice == VoteLike {
		s.VotesFor++
	} else {
		s.VotesAgainst++
	}
}

// ApprovalPercent returns the floored percentage of likes, 0 with no votes.
func (s *Suggestion) ApprovalPercent() int {
	total := s.VotesFor + s.VotesAgainst
	if total == 0 {
		return 0
	}
	return s.VotesFor * 100 / total
}

// IsResolved reports whether the suggestion reached a terminal status.
func (s *Suggestion) IsResolved() bool {
	return s.Status == SuggestionApproved || s.Status == SuggestionRejected
}
