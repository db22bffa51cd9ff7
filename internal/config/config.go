package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	MaxPageSize        int64 // Upper bound accepted for criteria page sizes
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                     // Default development
		LogLevel:           getLogLevel(),                                        // Default INFO
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),                      // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),               // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "registration_user"),       // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "registration_secret"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "registration_db"),     // Default database name
		MaxPageSize:        getEnvAsInt64("MAX_PAGE_SIZE", 200),                  // Default 200 rows per page
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
