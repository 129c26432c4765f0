package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"leanfunnel/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sheets   SheetsConfig
	Data     DataConfig
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
}

// SheetsConfig holds the remote spreadsheet settings
type SheetsConfig struct {
	SheetID         string
	Worksheet       string
	CredentialsFile string
	CredentialsJSON string
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
}

// DataConfig holds the local workbook override
type DataConfig struct {
	File string
}

// DatabaseConfig holds the optional snapshot history database
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port         string
	GinMode      string
	Title        string
	HistoryLimit int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Defaults for optional settings
const (
	DefaultSheetID      = "1KS4PgGii9kcDMKxVtJdPKhaPCabdwsBSC3nkjuRRfvw"
	DefaultWorksheet    = "System_Logic"
	DefaultSheetsURL    = "https://sheets.googleapis.com/v4"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultPort         = "8080"
	DefaultGinMode      = "release"
	DefaultTitle        = "Lean System Conversion Dashboard"
	DefaultHistoryLimit = 10
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := FromEnv()
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// FromEnv reads configuration from environment variables without validating,
// so callers can apply flag overrides first
func FromEnv() *Config {
	return &Config{
		Sheets:   *loadSheetsConfig(),
		Data:     DataConfig{File: getEnvOrDefault("DATA_FILE", "")},
		Database: DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")},
		Server:   *loadServerConfig(),
		Log:      LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}
}

func loadSheetsConfig() *SheetsConfig {
	return &SheetsConfig{
		SheetID:         getEnvOrDefault("SHEET_ID", DefaultSheetID),
		Worksheet:       getEnvOrDefault("WORKSHEET_NAME", DefaultWorksheet),
		CredentialsFile: getEnvOrDefault("GOOGLE_APPLICATION_CREDENTIALS", ""),
		CredentialsJSON: getEnvOrDefault("GCP_SERVICE_ACCOUNT_JSON", ""),
		BaseURL:         strings.TrimRight(getEnvOrDefault("SHEETS_BASE_URL", DefaultSheetsURL), "/"),
		Timeout:         getEnvDurationOrDefault("SHEETS_TIMEOUT", DefaultTimeout),
		MaxRetries:      getEnvIntOrDefault("SHEETS_MAX_RETRIES", DefaultMaxRetries),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         getEnvOrDefault("PORT", DefaultPort),
		GinMode:      getEnvOrDefault("GIN_MODE", DefaultGinMode),
		Title:        getEnvOrDefault("DASHBOARD_TITLE", DefaultTitle),
		HistoryLimit: getEnvIntOrDefault("HISTORY_LIMIT", DefaultHistoryLimit),
	}
}

// UsesLocalFile reports whether rows come from DATA_FILE instead of the remote sheet
func (c *Config) UsesLocalFile() bool {
	return c.Data.File != ""
}

// HistoryEnabled reports whether snapshots are recorded
func (c *Config) HistoryEnabled() bool {
	return c.Database.URL != ""
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	if !c.UsesLocalFile() {
		if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
			return errors.ConfigInvalid("GOOGLE_APPLICATION_CREDENTIALS or GCP_SERVICE_ACCOUNT_JSON is required when DATA_FILE is not set")
		}
		if c.Sheets.SheetID == "" {
			return errors.ConfigInvalid("SHEET_ID is required")
		}
		if c.Sheets.Worksheet == "" {
			return errors.ConfigInvalid("WORKSHEET_NAME is required")
		}
	}
	if c.Sheets.MaxRetries < 0 {
		return errors.ConfigInvalid("SHEETS_MAX_RETRIES cannot be negative")
	}
	if c.Server.HistoryLimit < 0 {
		return errors.ConfigInvalid("HISTORY_LIMIT cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
