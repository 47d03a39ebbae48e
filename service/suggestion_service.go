package service

import (
	"time"

	"starosta/models"
	"starosta/store"
)

type suggestionService struct {
	suggestions *store.SuggestionStore
	channels    *store.SuggestionChannelStore
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(suggestions *store.SuggestionStore, channels *store.SuggestionChannelStore) SuggestionService {
	return &suggestionService{suggestions: suggestions, channels: channels}
}

func (s *suggestionService) EnableChannel(channelID string) bool {
	return s.channels.Add(channelID)
}

func (s *suggestionService) DisableChannel(channelID string) bool {
	return s.channels.Remove(channelID)
}

func (s *suggestionService) IsEnabledChannel(channelID string) bool {
	return s.channels.Contains(channelID)
}

func (s *suggestionService) Create(messageID, channelID, authorID, authorName, content string, now time.Time) models.Suggestion {
	sg := &models.Suggestion{
		MessageID:  messageID,
		ChannelID:  channelID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		Status:     models.SuggestionPending,
		VotedUsers: []string{},
		CreatedAt:  now.Unix(),
	}
	s.suggestions.Put(sg)
	return *sg
}

func (s *suggestionService) Get(messageID string) (models.Suggestion, error) {
	return s.suggestions.Get(messageID)
}

// Vote casts a like or dislike. The check and the counter increment run
// inside the store lock, so concurrent votes cannot be lost or duplicated.
func (s *suggestionService) Vote(messageID, userID string, choice models.VoteChoice) (models.Suggestion, error) {
	return s.suggestions.Update(messageID, func(sg *models.Suggestion) error {
		if sg.AuthorID == userID {
			return ErrPermission
		}
		if sg.HasVoted(userID, models.VoteLike) || sg.HasVoted(userID, models.VoteDislike) {
			return ErrDuplicateVote
		}
		sg.RecordVote(userID, choice)
		return nil
	})
}

func (s *suggestionService) Edit(messageID, userID, newContent string) (models.Suggestion, error) {
	return s.suggestions.Update(messageID, func(sg *models.Suggestion) error {
		if sg.AuthorID != userID {
			return ErrPermission
		}
		sg.Content = newContent
		return nil
	})
}

// Resolve stamps the terminal status and removes the record. Further votes
// against the message ID fail with ErrNotFound.
func (s *suggestionService) Resolve(messageID string, status models.SuggestionStatus) (models.Suggestion, error) {
	sg, err := s.suggestions.Get(messageID)
	if err != nil {
		return models.Suggestion{}, err
	}
	sg.Status = status
	s.suggestions.Delete(messageID)
	return sg, nil
}
