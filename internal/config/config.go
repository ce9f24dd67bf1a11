package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	FrontendURL     string
	Player1         string
	Player2         string
	SearchTimeout   time.Duration
	MatchIdleTTL    time.Duration
	CleanupInterval time.Duration
	LogLevel        string
	LogPretty       bool
}

var AppConfig *Config

// userEnvFile is looked up under the XDG config directories.
const userEnvFile = "connect4-engine/engine.env"

// LoadEnv reads .env from the working directory or its parent, then the
// per-user file under $XDG_CONFIG_HOME. Values already set win, so the
// environment overrides .env which overrides the user file. Missing files are
// not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Str("component", "config").Msg("no .env file found")
		}
	}

	path, err := xdg.SearchConfigFile(userEnvFile)
	if err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("component", "config").Str("path", path).Msg("cannot read user config")
		return
	}
	log.Debug().Str("component", "config").Str("path", path).Msg("loaded user config")
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	AppConfig = &Config{
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
		Player1:         GetEnv("PLAYER1", "human"),
		Player2:         GetEnv("PLAYER2", "ai:6"),
		SearchTimeout:   GetEnvAsDuration("SEARCH_TIMEOUT_SECONDS", 0, time.Second),
		MatchIdleTTL:    GetEnvAsDuration("MATCH_IDLE_TTL_HOURS", 24, time.Hour),
		CleanupInterval: GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 60, time.Minute),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		LogPretty:       GetEnvAsBool("LOG_PRETTY", false),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).
			Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultValue)) * unit
}
