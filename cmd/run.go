package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"starosta/bot"
	"starosta/config"
	"starosta/events"
	"starosta/scheduler"
	"starosta/service"
	"starosta/store"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting starosta bot...")

	// Load configuration
	cfg := config.Get()

	tiers, err := config.LoadRoleTiers(cfg.RoleTiersFile)
	if err != nil {
		return fmt.Errorf("failed to load role tiers: %w", err)
	}

	// Initialize snapshot stores
	log.Println("Loading snapshots...")
	profiles := store.NewProfileStore(cfg.DataFile("users.json"), cfg.StartingChips)
	suggestions := store.NewSuggestionStore(cfg.DataFile("suggestions_data.json"))
	suggestionChannels := store.NewSuggestionChannelStore(cfg.DataFile("suggestions_channels.json"))
	birthdays := store.NewBirthdayStore(cfg.DataFile("birthdays.json"))
	autoRoles := store.NewAutoRoleStore(cfg.DataFile("auto_roles.json"))
	bannedWords := store.NewBannedWordStore(cfg.DataFile("banned_words.json"))
	log.Println("Snapshots loaded successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize services
	log.Println("Initializing services...")
	progressionService := service.NewProgressionService(profiles, tiers, cfg.MessageXP, cfg.VoiceXP)
	economyService := service.NewEconomyService(profiles, cfg.BoosterX2Cost, cfg.BoosterX5Cost, eventBus)
	antiSpamService := service.NewAntiSpamService(profiles)
	suggestionService := service.NewSuggestionService(suggestions, suggestionChannels)
	bannedWordService := service.NewBannedWordService(bannedWords)
	birthdayService := service.NewBirthdayService(birthdays)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		AdminID: cfg.AdminID,
	}
	discordBot, err := bot.New(botConfig, progressionService, economyService, antiSpamService, suggestionService, bannedWordService, birthdayService, autoRoles, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Start the periodic jobs
	backupFiles := []string{
		profiles.Path(),
		birthdays.Path(),
	}
	sched := scheduler.New(discordBot.Session(), progressionService, birthdayService, profiles, eventBus, cfg.AdminID, backupFiles)
	go sched.Run(ctx)

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Write the final profile snapshot
	profiles.Flush()

	// Give in-flight event handlers a moment to finish
	time.Sleep(1 * time.Second)
	log.Println("Shutdown completed")

	return nil
}
