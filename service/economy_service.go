package service

import (
	"context"
	"math/rand"
	"time"

	"starosta/events"
	"starosta/models"
	"starosta/store"
)

const (
	// DailyCooldown is the wait between daily claims.
	DailyCooldown = 24 * time.Hour

	// Daily bonus is a uniform integer in [DailyBonusMin, DailyBonusMax).
	DailyBonusMin = 50
	DailyBonusMax = 150

	// CasinoWinProbability is the house odds for the plain casino wager.
	CasinoWinProbability = 0.45

	// BoosterDuration is how long a purchased booster window stays open.
	BoosterDuration = 24 * time.Hour
)

type economyService struct {
	profiles      *store.ProfileStore
	boosterX2Cost int64
	boosterX5Cost int64
	eventBus      EventPublisher
}

// NewEconomyService creates a new economy service
func NewEconomyService(profiles *store.ProfileStore, boosterX2Cost, boosterX5Cost int64, eventBus EventPublisher) EconomyService {
	return &economyService{
		profiles:      profiles,
		boosterX2Cost: boosterX2Cost,
		boosterX5Cost: boosterX5Cost,
		eventBus:      eventBus,
	}
}

func (s *economyService) DailyClaim(userID string, now time.Time) (int64, error) {
	var bonus int64
	err := s.profiles.UpdateErr(userID, func(p *models.UserProfile) error {
		elapsed := now.Unix() - p.LastDailyClaim
		if wait := int64(DailyCooldown.Seconds()) - elapsed; wait > 0 {
			return &CooldownError{Remaining: time.Duration(wait) * time.Second}
		}
		bonus = int64(rand.Intn(DailyBonusMax-DailyBonusMin)) + DailyBonusMin
		p.Chips += bonus
		p.LastDailyClaim = now.Unix()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bonus, nil
}

func (s *economyService) Wager(userID string, amount int64, winProbability float64) (*WagerResult, error) {
	var result *WagerResult
	err := s.profiles.UpdateErr(userID, func(p *models.UserProfile) error {
		if amount <= 0 || amount > p.Chips {
			return ErrInsufficientFunds
		}
		won := rand.Float64() < winProbability
		if won {
			p.Chips += amount
		} else {
			p.DeductChips(amount)
		}
		result = &WagerResult{Won: won, Amount: amount, NewChips: p.Chips}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *economyService) BuyBooster(userID string, tier models.BoosterTier, now time.Time) (*BoosterPurchase, error) {
	var price int64
	switch tier {
	case models.BoosterX2:
		price = s.boosterX2Cost
	case models.BoosterX5:
		price = s.boosterX5Cost
	default:
		return nil, &ValidationError{Reason: "unknown booster tier, use x2 or x5"}
	}

	until := now.Add(BoosterDuration).Unix()
	var purchase *BoosterPurchase
	err := s.profiles.UpdateErr(userID, func(p *models.UserProfile) error {
		if p.Chips < price {
			return ErrInsufficientFunds
		}
		p.Chips -= price
		// Only the purchased tier's window is overwritten; an open window
		// for the other tier keeps its expiry.
		if tier == models.BoosterX2 {
			p.BoosterX2Until = until
		} else {
			p.BoosterX5Until = until
		}
		purchase = &BoosterPurchase{Tier: tier, Price: price, Until: until, RemainingChips: p.Chips}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.eventBus.Emit(context.Background(), events.BoosterPurchasedEvent{
		UserID: userID,
		Tier:   string(tier),
		Until:  until,
	})
	return purchase, nil
}

func (s *economyService) BoosterPrice(tier models.BoosterTier) int64 {
	switch tier {
	case models.BoosterX2:
		return s.boosterX2Cost
	case models.BoosterX5:
		return s.boosterX5Cost
	default:
		return 0
	}
}

func (s *economyService) SetChips(userID string, chips int64) {
	s.profiles.Update(userID, func(p *models.UserProfile) {
		p.Chips = chips
	})
}

func (s *economyService) StartBlackjack(userID string, bet int64) (*models.BlackjackRound, error) {
	p, ok := s.profiles.Get(userID)
	if !ok {
		p = s.profiles.Default()
	}
	if bet <= 0 || bet > p.Chips {
		return nil, ErrInsufficientFunds
	}
	return models.NewBlackjackRound(userID, bet), nil
}

func (s *economyService) SettleBlackjack(round *models.BlackjackRound) int64 {
	var chips int64
	s.profiles.Update(round.UserID, func(p *models.UserProfile) {
		switch round.Outcome {
		case models.BlackjackWin:
			p.Chips += round.Bet
		case models.BlackjackLoss:
			p.DeductChips(round.Bet)
		}
		chips = p.Chips
	})
	return chips
}
