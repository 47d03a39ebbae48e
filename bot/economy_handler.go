package bot

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"
	"starosta/models"
	"starosta/service"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	bonus, err := b.economy.DailyClaim(i.Member.User.ID, time.Now())
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	profile := b.progression.Profile(i.Member.User.ID)
	msg := fmt.Sprintf("💰 You claimed **%s chips**! Balance: **%s chips**",
		common.FormatChips(bonus), common.FormatChips(profile.Chips))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}

func (b *Bot) handleCasino(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	result, err := b.economy.Wager(i.Member.User.ID, amount, service.CasinoWinProbability)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎰 Casino",
		Description: common.FormatWagerResult(result.Won, result.Amount, result.NewChips),
		Color:       0xE74C3C,
	}
	if result.Won {
		embed.Color = 0x2ECC71
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to casino command: %v", err)
	}
}

func (b *Bot) handleShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	profile := b.progression.Profile(i.Member.User.ID)

	embed := &discordgo.MessageEmbed{
		Title:       "🛒 Booster shop",
		Description: fmt.Sprintf("Your balance: **%s chips**", common.FormatChips(profile.Chips)),
		Color:       0xF1C40F,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "X2 booster",
				Value: fmt.Sprintf("Doubles message and voice XP for 24h — **%s chips**\n`/buy_booster x2`", common.FormatChips(b.boosterPrice(models.BoosterX2))),
			},
			{
				Name:  "X5 booster",
				Value: fmt.Sprintf("Quintuples message and voice XP for 24h — **%s chips**\n`/buy_booster x5`", common.FormatChips(b.boosterPrice(models.BoosterX5))),
			},
		},
	}

	if booster, remaining := profile.ActiveBooster(time.Now().Unix()); booster != "" {
		expiry := time.Now().Add(time.Duration(remaining) * time.Second)
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Active booster: %s, expires %s", boosterLabel(models.BoosterTier(booster)), expiry.Format("15:04 02.01")),
		}
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to shop command: %v", err)
	}
}

func (b *Bot) handleBuyBooster(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var tier string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "tier" {
			tier = opt.StringValue()
		}
	}

	purchase, err := b.economy.BuyBooster(i.Member.User.ID, models.BoosterTier(tier), time.Now())
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	msg := fmt.Sprintf("⚡ **%s booster** active until %s! Balance: **%s chips**",
		boosterLabel(purchase.Tier),
		common.FormatDiscordTimestamp(time.Unix(purchase.Until, 0), "f"),
		common.FormatChips(purchase.RemainingChips))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to buy_booster command: %v", err)
	}
}

// boosterPrice resolves the configured price for a tier for shop display.
func (b *Bot) boosterPrice(tier models.BoosterTier) int64 {
	return b.economy.BoosterPrice(tier)
}
