package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starosta/events"
	"starosta/models"
	"starosta/store"
	"starosta/store/testutil"
)

func newTestEconomy(t *testing.T) (EconomyService, *store.ProfileStore) {
	t.Helper()
	profiles := newTestProfiles(t)
	svc := NewEconomyService(profiles, 2000, 5000, events.NewBus())
	return svc, profiles
}

func TestEconomyService_DailyClaim_FirstClaim(t *testing.T) {
	svc, h := newTestEconomy(t)
	userID := testutil.UserID()

	bonus, err := svc.DailyClaim(userID, time.Now())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bonus, int64(50))
	assert.Less(t, bonus, int64(150))

	profile, ok := h.Get(userID)
	require.True(t, ok)
	assert.Equal(t, 100+bonus, profile.Chips)
}

func TestEconomyService_DailyClaim_OnCooldown(t *testing.T) {
	svc, _ := newTestEconomy(t)
	userID := testutil.UserID()
	now := time.Now()

	_, err := svc.DailyClaim(userID, now)
	require.NoError(t, err)

	_, err = svc.DailyClaim(userID, now.Add(time.Hour))
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 23*time.Hour, cooldown.Remaining)
}

func TestEconomyService_DailyClaim_ExactBoundary(t *testing.T) {
	svc, _ := newTestEconomy(t)
	userID := testutil.UserID()
	now := time.Now()

	_, err := svc.DailyClaim(userID, now)
	require.NoError(t, err)

	// Exactly 24h later the claim is allowed again.
	_, err = svc.DailyClaim(userID, now.Add(24*time.Hour))
	assert.NoError(t, err)
}

func TestEconomyService_Wager_InsufficientFunds(t *testing.T) {
	svc, _ := newTestEconomy(t)
	userID := testutil.UserID()

	_, err := svc.Wager(userID, 150, 0.5)
	assert.ErrorIs(t, err, ErrInsufficientFunds, "default balance is 100")

	_, err = svc.Wager(userID, 0, 0.5)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = svc.Wager(userID, -10, 0.5)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestEconomyService_Wager_ForcedWin(t *testing.T) {
	svc, h := newTestEconomy(t)
	userID := testutil.UserID()

	result, err := svc.Wager(userID, 50, 1.0)
	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, int64(150), result.NewChips)

	profile, _ := h.Get(userID)
	assert.Equal(t, int64(150), profile.Chips)
}

func TestEconomyService_Wager_ForcedLoss(t *testing.T) {
	svc, _ := newTestEconomy(t)
	userID := testutil.UserID()

	result, err := svc.Wager(userID, 50, 0.0)
	require.NoError(t, err)
	assert.False(t, result.Won)
	assert.Equal(t, int64(50), result.NewChips)
}

func TestEconomyService_Wager_AllIn_LossSaturatesAtZero(t *testing.T) {
	svc, h := newTestEconomy(t)
	userID := testutil.UserID()

	result, err := svc.Wager(userID, 100, 0.0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.NewChips)

	profile, _ := h.Get(userID)
	assert.Equal(t, int64(0), profile.Chips)
}

func TestEconomyService_BuyBooster_X2(t *testing.T) {
	svc, h := newTestEconomy(t)
	userID := testutil.UserID()
	now := time.Now()

	svc.SetChips(userID, 2500)

	purchase, err := svc.BuyBooster(userID, models.BoosterX2, now)
	require.NoError(t, err)
	assert.Equal(t, models.BoosterX2, purchase.Tier)
	assert.Equal(t, int64(2000), purchase.Price)
	assert.Equal(t, int64(500), purchase.RemainingChips)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), purchase.Until)

	profile, _ := h.Get(userID)
	assert.Equal(t, purchase.Until, profile.BoosterX2Until)
	assert.Equal(t, int64(0), profile.BoosterX5Until, "x5 window stays untouched")
}

func TestEconomyService_BuyBooster_KeepsOtherTierWindow(t *testing.T) {
	svc, h := newTestEconomy(t)
	userID := testutil.UserID()
	now := time.Now()

	x5Until := now.Add(2 * time.Hour).Unix()
	h.Update(userID, func(p *models.UserProfile) {
		p.Chips = 10000
		p.BoosterX5Until = x5Until
	})

	_, err := svc.BuyBooster(userID, models.BoosterX2, now)
	require.NoError(t, err)

	profile, _ := h.Get(userID)
	assert.Equal(t, x5Until, profile.BoosterX5Until)
}

func TestEconomyService_BuyBooster_InsufficientFunds(t *testing.T) {
	svc, _ := newTestEconomy(t)
	userID := testutil.UserID()

	_, err := svc.BuyBooster(userID, models.BoosterX5, time.Now())
	assert.ErrorIs(t, err, ErrInsufficientFunds, "default balance cannot afford 5000")
}

func TestEconomyService_BuyBooster_UnknownTier(t *testing.T) {
	svc, _ := newTestEconomy(t)

	_, err := svc.BuyBooster(testutil.UserID(), models.BoosterTier("x9"), time.Now())
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestEconomyService_BoosterPrice(t *testing.T) {
	svc, _ := newTestEconomy(t)

	assert.Equal(t, int64(2000), svc.BoosterPrice(models.BoosterX2))
	assert.Equal(t, int64(5000), svc.BoosterPrice(models.BoosterX5))
	assert.Equal(t, int64(0), svc.BoosterPrice(models.BoosterTier("x9")))
}

func TestEconomyService_StartBlackjack_ValidatesOnly(t *testing.T) {
	svc, h := newTestEconomy(t)
	userID := testutil.UserID()

	_, err := svc.StartBlackjack(userID, 150)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	round, err := svc.StartBlackjack(userID, 50)
	require.NoError(t, err)
	assert.Len(t, round.Player, 2)
	assert.Len(t, round.Dealer, 2)

	// No chips move until settlement.
	profile, ok := h.Get(userID)
	if ok {
		assert.Equal(t, int64(100), profile.Chips)
	}
}

func TestEconomyService_SettleBlackjack(t *testing.T) {
	tests := []struct {
		name    string
		outcome models.BlackjackOutcome
		want    int64
	}{
		{"win credits the bet", models.BlackjackWin, 150},
		{"loss debits the bet", models.BlackjackLoss, 50},
		{"push moves nothing", models.BlackjackPush, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestEconomy(t)
			userID := testutil.UserID()

			round := &models.BlackjackRound{UserID: userID, Bet: 50, Done: true, Outcome: tt.outcome}
			chips := svc.SettleBlackjack(round)
			assert.Equal(t, tt.want, chips)
		})
	}
}
