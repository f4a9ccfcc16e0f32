package envconfig

import (
	"os"
	"strconv"
	"strings"
	"time"

	"habesha-bites/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from the given .env file. Variables
// already present in the environment win over the file.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// GetEnv returns the environment variable value or the fallback if unset
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvAsInt returns the environment variable parsed as int or the fallback
func GetEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration returns the environment variable parsed as a duration
// (e.g. "30m", "1h") or the fallback
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// GetLogLevel reads LOG_LEVEL into a logger level, defaulting to info
func GetLogLevel() logger.LogLevel {
	switch strings.ToLower(GetEnv("LOG_LEVEL", "info")) {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}
