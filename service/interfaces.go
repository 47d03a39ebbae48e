package service

import (
	"context"
	"time"

	"starosta/events"
	"starosta/models"
)

// EventPublisher defines the interface for publishing engine events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// LevelUp reports the highest level reached by one award call.
type LevelUp struct {
	UserID   string
	NewLevel int64
}

// LeaderboardEntry is one row of the server leaderboard.
type LeaderboardEntry struct {
	UserID       string
	Level        int64
	XP           int64
	VoiceMinutes int64
}

// ProgressionService defines the interface for XP, levels and role tiers
type ProgressionService interface {
	// AwardMessageXP grants the per-message XP (booster-multiplied) and
	// returns a LevelUp when one or more thresholds were crossed.
	AwardMessageXP(userID string) *LevelUp

	// AwardVoiceMinute grants one minute of voice time plus voice XP.
	AwardVoiceMinute(userID string) *LevelUp

	// SetLevel overrides a user's level (administrator action).
	SetLevel(userID string, level int64)

	// SetXP overrides a user's carried XP (administrator action).
	SetXP(userID string, xp int64)

	// Profile returns the profile for userID, or defaults if absent.
	Profile(userID string) models.UserProfile

	// Leaderboard returns the top entries sorted by level then XP.
	Leaderboard(limit int) []LeaderboardEntry

	// RoleForLevel resolves the highest tier at or below level.
	RoleForLevel(level int64) (models.RoleTier, bool)

	// Tiers returns the configured tier table, ascending.
	Tiers() []models.RoleTier

	// InactiveSince lists users whose last message predates the cutoff.
	InactiveSince(cutoff time.Time) []string
}

// WagerResult reports the outcome of a chip wager.
type WagerResult struct {
	Won      bool
	Amount   int64
	NewChips int64
}

// BoosterPurchase reports a successful booster purchase.
type BoosterPurchase struct {
	Tier           models.BoosterTier
	Price          int64
	Until          int64
	RemainingChips int64
}

// EconomyService defines the interface for the chips economy and games
type EconomyService interface {
	// DailyClaim grants the daily bonus or fails with a CooldownError.
	DailyClaim(userID string, now time.Time) (int64, error)

	// Wager bets amount at the given win probability, crediting on a win
	// and debiting (saturating at zero) on a loss.
	Wager(userID string, amount int64, winProbability float64) (*WagerResult, error)

	// BuyBooster debits the tier price and opens that tier's window for
	// its full duration; the other tier's expiry is untouched.
	BuyBooster(userID string, tier models.BoosterTier, now time.Time) (*BoosterPurchase, error)

	// BoosterPrice returns the configured price for a tier, 0 if unknown.
	BoosterPrice(tier models.BoosterTier) int64

	// SetChips overrides a user's balance (administrator action).
	SetChips(userID string, chips int64)

	// StartBlackjack validates the bet and deals a fresh round. Chips move
	// only at settlement.
	StartBlackjack(userID string, bet int64) (*models.BlackjackRound, error)

	// SettleBlackjack applies the finished round's outcome to the balance
	// and returns the new chip count. Pushes move no chips.
	SettleBlackjack(round *models.BlackjackRound) int64
}

// SpamVerdict is the anti-spam decision for one message.
type SpamVerdict int

const (
	// SpamOK forwards the message to XP processing.
	SpamOK SpamVerdict = iota
	// SpamDropped silently drops a message from a blocked user.
	SpamDropped
	// SpamPunished starts a block and triggers a timeout and warning.
	SpamPunished
)

// AntiSpamService defines the interface for the sliding-window limiter
type AntiSpamService interface {
	// Observe records one message at now and returns the verdict.
	Observe(userID string, now time.Time) SpamVerdict
}

// SuggestionService defines the interface for the suggestion workflow
type SuggestionService interface {
	// EnableChannel marks a channel as a suggestion channel.
	EnableChannel(channelID string) bool

	// DisableChannel unmarks a channel, reporting whether it was enabled.
	DisableChannel(channelID string) bool

	// IsEnabledChannel reports whether posts in channelID auto-convert.
	IsEnabledChannel(channelID string) bool

	// Create records a pending suggestion under the posted message ID.
	Create(messageID, channelID, authorID, authorName, content string, now time.Time) models.Suggestion

	// Get returns the active suggestion or ErrNotFound.
	Get(messageID string) (models.Suggestion, error)

	// Vote casts a like/dislike. The author cannot vote and each user
	// votes at most once for the suggestion's lifetime.
	Vote(messageID, userID string, choice models.VoteChoice) (models.Suggestion, error)

	// Edit replaces the content; only the author may edit and votes are
	// preserved.
	Edit(messageID, userID, newContent string) (models.Suggestion, error)

	// Resolve sets a terminal status and removes the record from the
	// active set. Caller is responsible for the administrator check.
	Resolve(messageID string, status models.SuggestionStatus) (models.Suggestion, error)
}

// BannedWordService defines the interface for banned-word moderation
type BannedWordService interface {
	// Add normalizes and inserts a word, reporting whether it was new.
	Add(word string) bool

	// Remove deletes a word or fails with ErrNotFound.
	Remove(word string) error

	// List returns the sorted word list.
	List() []string

	// Match reports the first banned word found on a word boundary in
	// content, case-insensitively.
	Match(content string) (string, bool)
}

// BirthdayEntry is one calendar row, sorted by month then day.
type BirthdayEntry struct {
	UserID string
	Day    int
	Month  int
}

// BirthdayService defines the interface for the birthday calendar
type BirthdayService interface {
	// Set validates and stores a "dd.mm" birthday for userID.
	Set(userID string, day, month int) (string, error)

	// Remove deletes a birthday or fails with ErrNotFound.
	Remove(userID string) error

	// All returns the calendar sorted by month then day.
	All() []BirthdayEntry

	// DueToday lists users whose birthday matches now's day and month.
	DueToday(now time.Time) []string
}
