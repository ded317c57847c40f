package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Ledger   LedgerConfig
	Settings SettingsConfig
	Reports  ReportsConfig
	Backup   BackupConfig
	Database DatabaseConfig
}

type LedgerConfig struct {
	// Path of the aggregate edit ledger file.
	Path string
	// JournalDir holds the per-file journals, one per imported report file.
	JournalDir string
}

type SettingsConfig struct {
	// Backend selects the provider: "file" or "postgres".
	Backend string
	Dir     string
}

type ReportsConfig struct {
	Root string
}

type BackupConfig struct {
	Enabled  bool
	Dir      string
	Schedule string
	Keep     int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// Load reads configuration from environment variables, including a .env
// file in the working directory when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Ledger: LedgerConfig{
			Path:       getEnv("LEDGER_PATH", "rettelser.json"),
			JournalDir: getEnv("LEDGER_JOURNAL_DIR", "rettelser"),
		},
		Settings: SettingsConfig{
			Backend: getEnv("SETTINGS_BACKEND", "file"),
			Dir:     getEnv("SETTINGS_DIR", "innstillinger"),
		},
		Reports: ReportsConfig{
			Root: getEnv("REPORTS_ROOT", "rapporter"),
		},
		Backup: BackupConfig{
			Enabled:  getEnvAsBool("BACKUP_ENABLED", true),
			Dir:      getEnv("BACKUP_DIR", "backup"),
			Schedule: getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
			Keep:     getEnvAsInt("BACKUP_KEEP", 30),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "taxirapport"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
	}

	if cfg.Settings.Backend != "file" && cfg.Settings.Backend != "postgres" {
		return nil, fmt.Errorf("SETTINGS_BACKEND must be \"file\" or \"postgres\", got %q", cfg.Settings.Backend)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
