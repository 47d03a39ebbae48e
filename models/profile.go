package models

// BoosterTier identifies a purchasable XP booster
type BoosterTier string

const (
	BoosterX2 BoosterTier = "x2"
	BoosterX5 BoosterTier = "x5"
)

// UserProfile represents a member's progression and economy state. The
// anti-spam fields are process-local and never written to the snapshot.
type UserProfile struct {
	XP             int64 `json:"xp"`
	Level          int64 `json:"level"`
	VoiceMinutes   int64 `json:"minutes"`
	LastDailyClaim int64 `json:"last_daily"`
	Chips          int64 `json:"chips"`

	// Booster expiry timestamps (unix seconds)
	BoosterX2Until int64 `json:"xp_booster_x2_until"`
	BoosterX5Until int64 `json:"xp_booster_x5_until"`

	// Anti-spam state (unix milliseconds), transient
	LastMessageAt int64 `json:"-"`
	SpamCounter   int   `json:"-"`
	BlockedUntil  int64 `json:"-"`
}

// NewUserProfile creates a profile with the default starting state.
func NewUserProfile(startingChips int64) *UserProfile {
	return &UserProfile{Chips: startingChips}
}

// XPMultiplier returns the booster multiplier active at now (unix seconds).
// An open x5 window always wins over an overlapping x2 window.
func (p *UserProfile) XPMultiplier(now int64) int64 {
	switch {
	case now < p.BoosterX5Until:
		return 5
	case now < p.BoosterX2Until:
		return 2
	default:
		return 1
	}
}

// ActiveBooster returns the active booster tier ("x2" or "x5") and the
// seconds until it expires, or ("", 0) when no window is open.
func (p *UserProfile) ActiveBooster(now int64) (string, int64) {
	if now < p.BoosterX5Until {
		return "x5", p.BoosterX5Until - now
	}
	if now < p.BoosterX2Until {
		return "x2", p.BoosterX2Until - now
	}
	return "", 0
}

// DeductChips removes amount from the balance, saturating at zero.
func (p *UserProfile) DeductChips(amount int64) {
	p.Chips -= amount
	if p.Chips < 0 {
		p.Chips = 0
	}
}
