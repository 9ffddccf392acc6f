package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration of the study planner process
type Config struct {
	// Port the HTTP API listens on
	Port string `yaml:"port"`
	// DBType selects the storage backend: "sqlite" or "postgres"
	DBType string `yaml:"db_type"`
	// DBPath is the sqlite database file
	DBPath string `yaml:"db_path"`
	// DatabaseURL is the postgres connection string
	DatabaseURL string `yaml:"database_url"`
	// LogMode is "development" or "production"
	LogMode string `yaml:"log_mode"`
	// SchedulerEnabled turns on the daily materialization job
	SchedulerEnabled bool `yaml:"scheduler_enabled"`
	// MaterializeAt is the UTC time of day (HH:MM) the daily job runs
	MaterializeAt string `yaml:"materialize_at"`
	// TelegramToken enables reminder messages when set
	TelegramToken string `yaml:"telegram_token"`
	// TelegramChatID is the chat reminders are sent to
	TelegramChatID int64 `yaml:"telegram_chat_id"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Port:             "8080",
		DBType:           "sqlite",
		DBPath:           "data/studyplan.db",
		LogMode:          "development",
		SchedulerEnabled: true,
		MaterializeAt:    "00:05",
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment (a .env file in the working directory is honoured when present).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.DBType = strings.ToLower(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("ENABLE_SCHEDULER"); v != "" {
		c.SchedulerEnabled = v != "false"
	}
	if v := os.Getenv("MATERIALIZE_AT"); v != "" {
		c.MaterializeAt = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		c.TelegramChatID = id
	}
	return nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.DBType {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for sqlite")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db_type %q", c.DBType)
	}

	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	return nil
}

// NotificationsEnabled reports whether reminders can be delivered
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
