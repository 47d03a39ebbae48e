package bot

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"
	"starosta/models"

	"github.com/bwmarrin/discordgo"
)

// blackjackIdleTimeout is how long an untouched round stays interactive.
// An expired round is discarded with the wager unsettled.
const blackjackIdleTimeout = 60 * time.Second

// blackjackSession binds an in-flight round to the message carrying it.
type blackjackSession struct {
	Round     *models.BlackjackRound
	ChannelID string
	Timestamp time.Time
}

var (
	blackjackSessions   = make(map[string]*blackjackSession)
	blackjackSessionsMu sync.RWMutex
)

func getBlackjackSession(messageID string) *blackjackSession {
	blackjackSessionsMu.RLock()
	defer blackjackSessionsMu.RUnlock()
	return blackjackSessions[messageID]
}

func saveBlackjackSession(messageID string, session *blackjackSession) {
	blackjackSessionsMu.Lock()
	defer blackjackSessionsMu.Unlock()
	session.Timestamp = time.Now()
	blackjackSessions[messageID] = session
}

func deleteBlackjackSession(messageID string) {
	blackjackSessionsMu.Lock()
	defer blackjackSessionsMu.Unlock()
	delete(blackjackSessions, messageID)
}

// startBlackjackCleanup discards rounds idle past the timeout.
func (b *Bot) startBlackjackCleanup() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		b.cleanupBlackjackSessions()
	}
}

func (b *Bot) cleanupBlackjackSessions() {
	blackjackSessionsMu.Lock()
	defer blackjackSessionsMu.Unlock()

	now := time.Now()
	for messageID, session := range blackjackSessions {
		if now.Sub(session.Timestamp) > blackjackIdleTimeout {
			delete(blackjackSessions, messageID)
			log.WithFields(log.Fields{
				"messageID": messageID,
				"user":      session.Round.UserID,
			}).Info("Expired abandoned blackjack round")
		}
	}
}

func blackjackButtons(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{Label: "Hit", Style: discordgo.SuccessButton, CustomID: "bj_hit", Disabled: disabled},
				&discordgo.Button{Label: "Stand", Style: discordgo.DangerButton, CustomID: "bj_stand", Disabled: disabled},
			},
		},
	}
}

// buildBlackjackEmbed renders the round. While the round is live only the
// dealer's first card shows.
func buildBlackjackEmbed(round *models.BlackjackRound, bet int64, settledChips int64) *discordgo.MessageEmbed {
	dealerHand := round.Dealer
	if !round.Done {
		dealerHand = round.Dealer[:1]
	}

	embed := &discordgo.MessageEmbed{
		Title: "🃏 Blackjack",
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Your hand",
				Value:  common.FormatCardHand(round.Player, models.HandValue(round.Player)),
				Inline: true,
			},
			{
				Name:   "Dealer",
				Value:  common.FormatCardHand(dealerHand, models.HandValue(dealerHand)),
				Inline: true,
			},
			{
				Name:   "Bet",
				Value:  fmt.Sprintf("%s chips", common.FormatChips(bet)),
				Inline: true,
			},
		},
	}

	if round.Done {
		switch round.Outcome {
		case models.BlackjackWin:
			embed.Color = 0x2ECC71
			embed.Description = fmt.Sprintf("🎉 **You won %s chips!** Balance: **%s chips**",
				common.FormatChips(bet), common.FormatChips(settledChips))
		case models.BlackjackLoss:
			embed.Color = 0xE74C3C
			embed.Description = fmt.Sprintf("😔 **You lost %s chips.** Balance: **%s chips**",
				common.FormatChips(bet), common.FormatChips(settledChips))
		case models.BlackjackPush:
			embed.Color = 0x95A5A6
			embed.Description = fmt.Sprintf("🤝 **Push.** Your bet stays with you. Balance: **%s chips**",
				common.FormatChips(settledChips))
		}
	}

	return embed
}

func (b *Bot) handleBlackjackCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "bet" {
			bet = opt.IntValue()
		}
	}

	round, err := b.economy.StartBlackjack(i.Member.User.ID, bet)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	// An opening 21 settles immediately with no player decision.
	if models.HandValue(round.Player) == 21 {
		round.Stand()
		chips := b.economy.SettleBlackjack(round)
		embed := buildBlackjackEmbed(round, bet, chips)
		if err := common.RespondWithEmbed(s, i, embed, blackjackButtons(true), false); err != nil {
			log.Errorf("Error responding to blackjack command: %v", err)
		}
		return
	}

	embed := buildBlackjackEmbed(round, bet, 0)
	if err := common.RespondWithEmbed(s, i, embed, blackjackButtons(false), false); err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
		return
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error fetching blackjack message: %v", err)
		return
	}
	saveBlackjackSession(msg.ID, &blackjackSession{Round: round, ChannelID: i.ChannelID})
}

// handleBlackjackInteraction handles the hit and stand buttons.
func (b *Bot) handleBlackjackInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	customID := i.MessageComponentData().CustomID
	if customID != "bj_hit" && customID != "bj_stand" {
		return
	}

	session := getBlackjackSession(i.Message.ID)
	if session == nil {
		common.RespondWithError(s, i, "This round has expired. Start a new one with `/blackjack`.")
		return
	}
	if session.Round.UserID != i.Member.User.ID {
		common.RespondWithError(s, i, "This is not your round.")
		return
	}

	if customID == "bj_hit" {
		session.Round.Hit()
	} else {
		session.Round.Stand()
	}

	if session.Round.Done {
		deleteBlackjackSession(i.Message.ID)
		chips := b.economy.SettleBlackjack(session.Round)
		embed := buildBlackjackEmbed(session.Round, session.Round.Bet, chips)
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: blackjackButtons(true),
			},
		})
		if err != nil {
			log.Errorf("Error updating finished blackjack round: %v", err)
		}
		return
	}

	saveBlackjackSession(i.Message.ID, session)
	embed := buildBlackjackEmbed(session.Round, session.Round.Bet, 0)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: blackjackButtons(false),
		},
	})
	if err != nil {
		log.Errorf("Error updating blackjack round: %v", err)
	}
}
