package envconfig

import (
	"strconv"
	"time"

	"habesha-bites/pkg/database"
)

// LoadDatabaseConfig loads database configuration from environment variables
func LoadDatabaseConfig() database.Config {
	config := database.DefaultConfig()

	// Override with environment variables if they exist
	if host := GetEnv("DB_HOST", ""); host != "" {
		config.Host = host
	}

	if portStr := GetEnv("DB_PORT", ""); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}

	if user := GetEnv("DB_USER", ""); user != "" {
		config.User = user
	}

	if password := GetEnv("DB_PASSWORD", ""); password != "" {
		config.Password = password
	}

	if dbname := GetEnv("DB_NAME", ""); dbname != "" {
		config.DBName = dbname
	}

	if sslmode := GetEnv("DB_SSL_MODE", ""); sslmode != "" {
		config.SSLMode = sslmode
	}

	// Connection pool settings
	if maxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		config.MaxOpenConns = maxOpenConns
	}

	if maxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		config.MaxIdleConns = maxIdleConns
	}

	if connMaxLifetime := GetEnvAsDuration("DB_CONN_MAX_LIFETIME", 0); connMaxLifetime > 0 {
		config.ConnMaxLifetime = connMaxLifetime
	}

	if connMaxIdleTime := GetEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 0); connMaxIdleTime > 0 {
		config.ConnMaxIdleTime = connMaxIdleTime
	}

	return config
}

// GetSessionTTL reads how long an untouched in-progress cart survives
func GetSessionTTL() time.Duration {
	return GetEnvAsDuration("SESSION_TTL", time.Hour)
}
