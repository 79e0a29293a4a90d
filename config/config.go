package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"levelbot/progression"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken  string
	CommandPrefix string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Economy configuration
	MessageXP       int64 // XP granted per message sent
	LeaderboardSize int

	// AllowNegativeBalance keeps the unclamped debit behavior; when
	// false, debits fail instead of overdrawing.
	AllowNegativeBalance bool

	// Environment
	Environment string // "development", "production" or "test"
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
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		CommandPrefix: os.Getenv("DISCORD_CMD_PREFIX"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Defaults
		MessageXP:            progression.MessageXP,
		LeaderboardSize:      10,
		AllowNegativeBalance: true,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.CommandPrefix == "" {
		config.CommandPrefix = "?"
	}

	if xp := os.Getenv("MESSAGE_XP"); xp != "" {
		if parsed, err := strconv.ParseInt(xp, 10, 64); err == nil {
			config.MessageXP = parsed
		}
	}
	if size := os.Getenv("LEADERBOARD_SIZE"); size != "" {
		if parsed, err := strconv.Atoi(size); err == nil && parsed > 0 {
			config.LeaderboardSize = parsed
		}
	}
	if allow := os.Getenv("ALLOW_NEGATIVE_BALANCE"); allow != "" {
		config.AllowNegativeBalance = allow == "true"
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
