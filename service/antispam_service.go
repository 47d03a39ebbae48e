package service

import (
	"time"

	"starosta/models"
	"starosta/store"
)

const (
	// spamGap is the maximum gap between messages counted as spam.
	spamGap = 2000 * time.Millisecond

	// spamThreshold is the counter value that triggers a block.
	spamThreshold = 5

	// spamBlock is how long a punished user's messages are dropped.
	spamBlock = 30 * time.Second
)

type antiSpamService struct {
	profiles *store.ProfileStore
}

// NewAntiSpamService creates a new anti-spam service
func NewAntiSpamService(profiles *store.ProfileStore) AntiSpamService {
	return &antiSpamService{profiles: profiles}
}

// Observe applies the sliding-window rule for one message. The bookkeeping
// fields are transient, so no snapshot write happens here.
func (s *antiSpamService) Observe(userID string, now time.Time) SpamVerdict {
	verdict := SpamOK
	nowMillis := now.UnixMilli()
	s.profiles.Mutate(userID, func(p *models.UserProfile) {
		if nowMillis < p.BlockedUntil {
			verdict = SpamDropped
			return
		}

		if nowMillis-p.LastMessageAt < spamGap.Milliseconds() {
			p.SpamCounter++
		} else {
			p.SpamCounter = 0
		}
		p.LastMessageAt = nowMillis

		if p.SpamCounter >= spamThreshold {
			p.BlockedUntil = nowMillis + spamBlock.Milliseconds()
			p.SpamCounter = 0
			verdict = SpamPunished
		}
	})
	return verdict
}

// SpamBlockDuration is the block window applied on punishment, exposed for
// the timeout issued alongside the warning.
func SpamBlockDuration() time.Duration {
	return spamBlock
}
