package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starosta/models"
	"starosta/store/testutil"
)

func TestNeededXP_StrictlyIncreasing(t *testing.T) {
	prev := int64(0)
	for level := int64(0); level <= 100; level++ {
		needed := NeededXP(level)
		assert.Greater(t, needed, prev, "threshold must grow at level %d", level)
		prev = needed
	}
}

func TestNeededXP_Deterministic(t *testing.T) {
	assert.Equal(t, NeededXP(0), NeededXP(0))
	assert.Equal(t, NeededXP(10), NeededXP(10))
}

func TestProgressionService_AwardMessageXP_Accumulates(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)
	userID := testutil.UserID()

	up := svc.AwardMessageXP(userID)
	assert.Nil(t, up, "2 XP must not cross the first threshold")

	profile := svc.Profile(userID)
	assert.Equal(t, int64(2), profile.XP)
	assert.Equal(t, int64(0), profile.Level)
}

func TestProgressionService_AwardMessageXP_LevelUp(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)
	userID := testutil.UserID()

	// Park the user one message short of the first threshold.
	svc.SetXP(userID, NeededXP(0)-2)

	up := svc.AwardMessageXP(userID)
	require.NotNil(t, up)
	assert.Equal(t, int64(1), up.NewLevel)
	assert.Equal(t, userID, up.UserID)

	profile := svc.Profile(userID)
	assert.Equal(t, int64(1), profile.Level)
	assert.Equal(t, int64(0), profile.XP, "threshold is consumed, not kept")
}

func TestProgressionService_AwardMessageXP_MultiLevelJump(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)
	userID := testutil.UserID()

	// Enough XP for two consecutive thresholds in one award.
	svc.SetXP(userID, NeededXP(0)+NeededXP(1))

	up := svc.AwardMessageXP(userID)
	require.NotNil(t, up)
	assert.Equal(t, int64(2), up.NewLevel)
}

func TestProgressionService_AwardVoiceMinute(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)
	userID := testutil.UserID()

	svc.AwardVoiceMinute(userID)
	svc.AwardVoiceMinute(userID)

	profile := svc.Profile(userID)
	assert.Equal(t, int64(2), profile.VoiceMinutes)
	assert.Equal(t, int64(20), profile.XP)
}

func TestProgressionService_BoosterMultipliers(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)
	future := time.Now().Add(time.Hour).Unix()

	t.Run("x2 doubles", func(t *testing.T) {
		userID := testutil.UserID()
		profiles.Update(userID, func(p *models.UserProfile) {
			p.BoosterX2Until = future
		})
		svc.AwardMessageXP(userID)
		assert.Equal(t, int64(4), svc.Profile(userID).XP)
	})

	t.Run("x5 quintuples", func(t *testing.T) {
		userID := testutil.UserID()
		profiles.Update(userID, func(p *models.UserProfile) {
			p.BoosterX5Until = future
		})
		svc.AwardMessageXP(userID)
		assert.Equal(t, int64(10), svc.Profile(userID).XP)
	})

	t.Run("x5 wins over overlapping x2", func(t *testing.T) {
		userID := testutil.UserID()
		profiles.Update(userID, func(p *models.UserProfile) {
			p.BoosterX2Until = future
			p.BoosterX5Until = future
		})
		svc.AwardMessageXP(userID)
		assert.Equal(t, int64(10), svc.Profile(userID).XP)
	})

	t.Run("expired booster is ignored", func(t *testing.T) {
		userID := testutil.UserID()
		profiles.Update(userID, func(p *models.UserProfile) {
			p.BoosterX2Until = time.Now().Add(-time.Hour).Unix()
		})
		svc.AwardMessageXP(userID)
		assert.Equal(t, int64(2), svc.Profile(userID).XP)
	})
}

func TestProgressionService_SetLevel_DoesNotTouchXP(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)
	userID := testutil.UserID()

	svc.SetXP(userID, 42)
	svc.SetLevel(userID, 7)

	profile := svc.Profile(userID)
	assert.Equal(t, int64(7), profile.Level)
	assert.Equal(t, int64(42), profile.XP)
}

func TestProgressionService_Profile_UnknownUserDefaults(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)

	profile := svc.Profile(testutil.UserID())
	assert.Equal(t, int64(0), profile.Level)
	assert.Equal(t, int64(100), profile.Chips)
}

func TestProgressionService_Leaderboard_Ordering(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)

	low, mid, high := testutil.UserID(), testutil.UserID(), testutil.UserID()
	svc.SetLevel(low, 1)
	svc.SetLevel(mid, 5)
	svc.SetXP(mid, 10)
	svc.SetLevel(high, 5)
	svc.SetXP(high, 50)

	entries := svc.Leaderboard(10)
	require.Len(t, entries, 3)
	assert.Equal(t, high, entries[0].UserID, "same level breaks ties by XP")
	assert.Equal(t, mid, entries[1].UserID)
	assert.Equal(t, low, entries[2].UserID)
}

func TestProgressionService_Leaderboard_Limit(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)

	for n := 0; n < 5; n++ {
		svc.SetLevel(testutil.UserID(), int64(n))
	}

	assert.Len(t, svc.Leaderboard(3), 3)
}

func TestProgressionService_RoleForLevel(t *testing.T) {
	profiles := newTestProfiles(t)
	svc := NewProgressionService(profiles, models.DefaultRoleTiers(), 2, 10)

	tier, ok := svc.RoleForLevel(0)
	require.True(t, ok)
	assert.Equal(t, "Villager", tier.Name)

	tier, ok = svc.RoleForLevel(7)
	require.True(t, ok)
	assert.Equal(t, "Fence Neighbor", tier.Name, "levels between tiers map down")

	tier, ok = svc.RoleForLevel(99)
	require.True(t, ok)
	assert.Equal(t, "Elder", tier.Name, "levels past the table cap at the top tier")
}
