package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config application settings
type Config struct {
	TelegramToken  string
	HTTPAddr       string
	MaxContextSize int    // 0 keeps whole transcripts
	ChatDBPath     string // empty keeps transcripts in memory
	CatalogPath    string // optional xlsx replacing the built-in catalog
	AdminPassword  string // empty disables /admin
	Location       *time.Location
	LogLevel       log.Level
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		HTTPAddr:       ":8080",
		MaxContextSize: 0,
		ChatDBPath:     os.Getenv("CHAT_DB_PATH"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		Location:       time.Local,
		LogLevel:       log.InfoLevel,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}

	if raw := os.Getenv("MAX_CONTEXT_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_CONTEXT_SIZE is malformed: %w", err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("MAX_CONTEXT_SIZE must not be negative, got %d", parsed)
		}
		config.MaxContextSize = parsed
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("TIMEZONE is unknown: %w", err)
		}
		config.Location = loc
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL is malformed: %w", err)
		}
		config.LogLevel = level
	}

	return config, nil
}

// ValidateBot checks what the Telegram bot needs on top of Load
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN environment variable is empty")
	}
	return nil
}
