package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	AdminID      string

	// Storage configuration
	DataDir string

	// Progression settings
	MessageXP int64 // XP granted per message
	VoiceXP   int64 // XP granted per voice minute

	// Economy settings
	StartingChips int64
	BoosterX2Cost int64
	BoosterX5Cost int64

	// Optional role tier table override (TOML)
	RoleTiersFile string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		AdminID:      os.Getenv("ADMIN_ID"),

		// Storage
		DataDir: os.Getenv("DATA_DIR"),

		// Settings with defaults
		MessageXP:     2,
		VoiceXP:       10,
		StartingChips: 100,
		BoosterX2Cost: 2000,
		BoosterX5Cost: 5000,

		RoleTiersFile: os.Getenv("ROLE_TIERS_FILE"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if chips := os.Getenv("STARTING_CHIPS"); chips != "" {
		if parsed, err := strconv.ParseInt(chips, 10, 64); err == nil {
			config.StartingChips = parsed
		}
	}
	if xp := os.Getenv("MESSAGE_XP"); xp != "" {
		if parsed, err := strconv.ParseInt(xp, 10, 64); err == nil {
			config.MessageXP = parsed
		}
	}
	if xp := os.Getenv("VOICE_XP"); xp != "" {
		if parsed, err := strconv.ParseInt(xp, 10, 64); err == nil {
			config.VoiceXP = parsed
		}
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.AdminID == "" {
			return nil, fmt.Errorf("ADMIN_ID is required")
		}
	}

	return config, nil
}

// DataFile returns the path of a snapshot file inside the data directory.
func (c *Config) DataFile(name string) string {
	return filepath.Join(c.DataDir, name)
}
