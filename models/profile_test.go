package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_XPMultiplier(t *testing.T) {
	now := time.Now().Unix()
	future := now + 3600
	past := now - 3600

	tests := []struct {
		name    string
		x2Until int64
		x5Until int64
		want    int64
	}{
		{"no boosters", 0, 0, 1},
		{"active x2", future, 0, 2},
		{"active x5", 0, future, 5},
		{"x5 beats overlapping x2", future, future, 5},
		{"expired windows", past, past, 1},
		{"expired x5 falls back to x2", future, past, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{BoosterX2Until: tt.x2Until, BoosterX5Until: tt.x5Until}
			assert.Equal(t, tt.want, p.XPMultiplier(now))
		})
	}
}

func TestUserProfile_ActiveBooster(t *testing.T) {
	now := time.Now().Unix()

	p := &UserProfile{BoosterX2Until: now + 100}
	tier, remaining := p.ActiveBooster(now)
	assert.Equal(t, "x2", tier)
	assert.Equal(t, int64(100), remaining)

	p = &UserProfile{BoosterX2Until: now + 100, BoosterX5Until: now + 50}
	tier, _ = p.ActiveBooster(now)
	assert.Equal(t, "x5", tier, "x5 reported even when x2 lasts longer")

	p = &UserProfile{}
	tier, remaining = p.ActiveBooster(now)
	assert.Empty(t, tier)
	assert.Zero(t, remaining)
}

func TestUserProfile_DeductChips_SaturatesAtZero(t *testing.T) {
	p := NewUserProfile(100)

	p.DeductChips(30)
	assert.Equal(t, int64(70), p.Chips)

	p.DeductChips(500)
	assert.Equal(t, int64(0), p.Chips, "balance never goes negative")
}

func TestRoleTierForLevel(t *testing.T) {
	tiers := DefaultRoleTiers()

	tier, ok := RoleTierForLevel(tiers, 0)
	assert.True(t, ok)
	assert.Equal(t, "Villager", tier.Name)

	tier, ok = RoleTierForLevel(tiers, 23)
	assert.True(t, ok)
	assert.Equal(t, "Zootechnician", tier.Name)

	_, ok = RoleTierForLevel(nil, 10)
	assert.False(t, ok, "empty table matches nothing")
}
