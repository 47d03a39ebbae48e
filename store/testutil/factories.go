// Package testutil provides factories for store and service tests.
package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"starosta/models"
)

// UserID returns a random Discord-style snowflake string.
func UserID() string {
	return fmt.Sprintf("%d", gofakeit.Number(100000000000000000, 999999999999999999))
}

// Profile returns a profile with a plausible random state and no active
// boosters or spam bookkeeping.
func Profile() *models.UserProfile {
	return &models.UserProfile{
		XP:           int64(gofakeit.Number(0, 5000)),
		Level:        int64(gofakeit.Number(0, 50)),
		VoiceMinutes: int64(gofakeit.Number(0, 10000)),
		Chips:        int64(gofakeit.Number(0, 100000)),
	}
}

// Suggestion returns a pending suggestion authored by authorID.
func Suggestion(messageID, authorID string) *models.Suggestion {
	return &models.Suggestion{
		MessageID:  messageID,
		ChannelID:  UserID(),
		AuthorID:   authorID,
		AuthorName: gofakeit.Username(),
		Content:    gofakeit.Sentence(8),
		Status:     models.SuggestionPending,
		CreatedAt:  gofakeit.Date().Unix(),
	}
}
