package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	Environment  string
	IsProduction bool
	DatabasePath string
	LogDir       string
	BackupDir    string
	HistoryLimit int
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("MEAL_BOARD_ENV", "development"),
		DatabasePath: getEnv("MEAL_BOARD_DB_PATH", "data/mealboard.db"),
		LogDir:       getEnv("MEAL_BOARD_LOG_DIR", "logs"),
		BackupDir:    getEnv("MEAL_BOARD_BACKUP_DIR", "backups"),
		HistoryLimit: 100,
	}
	cfg.IsProduction = cfg.Environment == "production"

	if raw := os.Getenv("MEAL_BOARD_HISTORY_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("MEAL_BOARD_HISTORY_LIMIT must be a positive integer, got %q", raw)
		}
		cfg.HistoryLimit = limit
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("MEAL_BOARD_DB_PATH must not be empty")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
