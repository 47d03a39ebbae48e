package service

import (
	"math"
	"sort"
	"time"

	"starosta/models"
	"starosta/store"
)

type progressionService struct {
	profiles  *store.ProfileStore
	tiers     []models.RoleTier
	messageXP int64
	voiceXP   int64
}

// NewProgressionService creates a new progression service
func NewProgressionService(profiles *store.ProfileStore, tiers []models.RoleTier, messageXP, voiceXP int64) ProgressionService {
	return &progressionService{
		profiles:  profiles,
		tiers:     tiers,
		messageXP: messageXP,
		voiceXP:   voiceXP,
	}
}

// NeededXP returns the XP required to advance from level to level+1.
// The curve combines power growth with log scaling and is strictly
// increasing: floor(100*(level+1)^1.3*ln(level+2) + 100).
func NeededXP(level int64) int64 {
	lf := float64(level)
	return int64(100*math.Pow(lf+1, 1.3)*math.Log(lf+2) + 100)
}

// applyLevelUps consumes thresholds from the carried XP, one level at a
// time. Level is never recomputed from total XP.
func applyLevelUps(p *models.UserProfile) (int64, bool) {
	leveled := false
	for p.XP >= NeededXP(p.Level) {
		p.XP -= NeededXP(p.Level)
		p.Level++
		leveled = true
	}
	return p.Level, leveled
}

func (s *progressionService) award(userID string, base int64, voiceMinute bool) *LevelUp {
	now := time.Now().Unix()
	var result *LevelUp
	s.profiles.Mutate(userID, func(p *models.UserProfile) {
		p.XP += base * p.XPMultiplier(now)
		if voiceMinute {
			p.VoiceMinutes++
		}
		if lvl, ok := applyLevelUps(p); ok {
			result = &LevelUp{UserID: userID, NewLevel: lvl}
		}
	})
	return result
}

func (s *progressionService) AwardMessageXP(userID string) *LevelUp {
	return s.award(userID, s.messageXP, false)
}

func (s *progressionService) AwardVoiceMinute(userID string) *LevelUp {
	return s.award(userID, s.voiceXP, true)
}

func (s *progressionService) SetLevel(userID string, level int64) {
	s.profiles.Update(userID, func(p *models.UserProfile) {
		p.Level = level
	})
}

func (s *progressionService) SetXP(userID string, xp int64) {
	s.profiles.Update(userID, func(p *models.UserProfile) {
		p.XP = xp
	})
}

func (s *progressionService) Profile(userID string) models.UserProfile {
	if p, ok := s.profiles.Get(userID); ok {
		return p
	}
	return s.profiles.Default()
}

func (s *progressionService) Leaderboard(limit int) []LeaderboardEntry {
	all := s.profiles.All()
	entries := make([]LeaderboardEntry, 0, len(all))
	for id, p := range all {
		entries = append(entries, LeaderboardEntry{
			UserID:       id,
			Level:        p.Level,
			XP:           p.XP,
			VoiceMinutes: p.VoiceMinutes,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level > entries[j].Level
		}
		return entries[i].XP > entries[j].XP
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (s *progressionService) RoleForLevel(level int64) (models.RoleTier, bool) {
	return models.RoleTierForLevel(s.tiers, level)
}

func (s *progressionService) Tiers() []models.RoleTier {
	return s.tiers
}

// InactiveSince lists users whose last observed message predates cutoff.
// The timestamp is process-local, so the sweep only sees activity since
// the last restart.
func (s *progressionService) InactiveSince(cutoff time.Time) []string {
	cutoffMillis := cutoff.UnixMilli()
	var ids []string
	for id, p := range s.profiles.All() {
		if p.LastMessageAt != 0 && p.LastMessageAt < cutoffMillis {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
