package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"
	"starosta/events"
	"starosta/service"
	"starosta/store"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	AdminID string
}

type Bot struct {
	config      Config
	session     *discordgo.Session
	progression service.ProgressionService
	economy     service.EconomyService
	antiSpam    service.AntiSpamService
	suggestions service.SuggestionService
	bannedWords service.BannedWordService
	birthdays   service.BirthdayService
	autoRoles   *store.AutoRoleStore
	eventBus    *events.Bus
}

func New(config Config, progression service.ProgressionService, economy service.EconomyService, antiSpam service.AntiSpamService, suggestions service.SuggestionService, bannedWords service.BannedWordService, birthdays service.BirthdayService, autoRoles *store.AutoRoleStore, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:      config,
		session:     dg,
		progression: progression,
		economy:     economy,
		antiSpam:    antiSpam,
		suggestions: suggestions,
		bannedWords: bannedWords,
		birthdays:   birthdays,
		autoRoles:   autoRoles,
		eventBus:    eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleBlackjackInteraction)
	dg.AddHandler(bot.handleSuggestionInteraction)

	// Register gateway event handlers
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleMemberAdd)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start periodic cleanup of abandoned blackjack rounds
	go bot.startBlackjackCleanup()

	bot.subscribeEvents()

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// Session exposes the underlying gateway session for the scheduler.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// subscribeEvents wires engine events to platform delivery. Handlers run on
// the bus's goroutines, never on engine critical paths.
func (b *Bot) subscribeEvents() {
	b.eventBus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.LevelUpEvent)
		if !ok {
			return
		}
		b.announceLevelUp(e)
		if err := b.syncMemberRoles(e.GuildID, e.UserID, e.NewLevel); err != nil {
			log.Errorf("Failed to sync roles for user %s: %v", e.UserID, err)
		}
	})

	b.eventBus.Subscribe(events.EventTypeSpamBlocked, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.SpamBlockedEvent)
		if !ok {
			return
		}
		b.punishSpammer(e)
	})

	b.eventBus.Subscribe(events.EventTypeSuggestionResolved, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.SuggestionResolvedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"messageID": e.MessageID,
			"status":    e.Status,
		}).Info("Suggestion resolved")
	})

	b.eventBus.Subscribe(events.EventTypeBoosterPurchased, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.BoosterPurchasedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"userID": e.UserID,
			"tier":   e.Tier,
		}).Info("Booster purchased")
	})
}

func (b *Bot) announceLevelUp(e events.LevelUpEvent) {
	channelID := e.ChannelID
	if channelID == "" {
		guild, err := b.session.State.Guild(e.GuildID)
		if err != nil || guild.SystemChannelID == "" {
			return
		}
		channelID = guild.SystemChannelID
	}

	msg := fmt.Sprintf("🎉 <@%s> reached level **%d**!", e.UserID, e.NewLevel)
	if e.FromVoice {
		msg = fmt.Sprintf("🎙️ <@%s> reached level **%d** while hanging out in voice!", e.UserID, e.NewLevel)
	}
	if _, err := b.session.ChannelMessageSend(channelID, msg); err != nil {
		log.Errorf("Failed to announce level up for user %s: %v", e.UserID, err)
	}
}

// punishSpammer times the member out for the block window and leaves a
// short-lived warning in the channel.
func (b *Bot) punishSpammer(e events.SpamBlockedEvent) {
	until := time.UnixMilli(e.BlockedUntil)
	if err := b.session.GuildMemberTimeout(e.GuildID, e.UserID, &until); err != nil {
		log.Errorf("Failed to timeout spammer %s: %v", e.UserID, err)
	}

	warning, err := b.session.ChannelMessageSend(e.ChannelID,
		fmt.Sprintf("🚫 <@%s>, slow down! You are muted until %s.", e.UserID, common.FormatDiscordTimestamp(until, "T")))
	if err != nil {
		log.Errorf("Failed to send spam warning: %v", err)
		return
	}
	go b.deleteAfter(e.ChannelID, warning.ID, warningLifetime)
}

const warningLifetime = 5 * time.Second

// deleteAfter removes a message after the given delay.
func (b *Bot) deleteAfter(channelID, messageID string, delay time.Duration) {
	time.Sleep(delay)
	if err := b.session.ChannelMessageDelete(channelID, messageID); err != nil {
		log.Debugf("Failed to delete message %s: %v", messageID, err)
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "rank":
		b.handleRank(s, i)
	case "leaderboard":
		b.handleLeaderboard(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "casino":
		b.handleCasino(s, i)
	case "blackjack":
		b.handleBlackjackCommand(s, i)
	case "shop":
		b.handleShop(s, i)
	case "buy_booster":
		b.handleBuyBooster(s, i)
	case "birthday":
		b.handleBirthdayCommand(s, i)
	case "avatar":
		b.handleAvatar(s, i)
	case "poll":
		b.handlePoll(s, i)
	case "help":
		b.handleHelp(s, i)
	case "info":
		b.handleInfo(s, i)
	case "admin":
		b.handleAdminCommand(s, i)
	}
}
