package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"
	_ "time/tzdata" // embedded zoneinfo for TIMEZONE

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken      string
	DatabaseURL        string
	AdminTelegramID    int64
	LogLevel           string
	Environment        string
	Timezone           string
	Location           *time.Location // resolved from Timezone
	CronSpecDailyAlert string
	AlertLeadDays      int // alert this many days ahead of an event; 0 means on the day
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load does not override variables already set in the environment.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.CronSpecDailyAlert = os.Getenv("CRON_SPEC_DAILY_ALERT")
	if cfg.CronSpecDailyAlert == "" {
		cfg.CronSpecDailyAlert = "0 9 * * *" // Default: 9 AM daily
	}

	if leadStr := os.Getenv("ALERT_LEAD_DAYS"); leadStr != "" {
		cfg.AlertLeadDays, err = strconv.Atoi(leadStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ALERT_LEAD_DAYS: %w", err)
		}
		if cfg.AlertLeadDays < 0 {
			return nil, fmt.Errorf("invalid ALERT_LEAD_DAYS: must not be negative, got %d", cfg.AlertLeadDays)
		}
	}

	return cfg, nil
}
