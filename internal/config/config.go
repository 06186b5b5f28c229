package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/park285/chess-match-tracker/internal/obslog"
	"github.com/park285/chess-match-tracker/internal/store"
)

type AppConfig struct {
	StoreBackend string
	DataDir      string

	RedisURL    string
	RedisPrefix string
	DatabaseURL string

	SeedOpponents []string

	Locale      string
	MessagesDir string
	Timezone    string
	UserName    string

	Log obslog.Options
}

// Load reads an optional .env (ENV_FILE or ./.env) and then the process environment.
// Values already set in the environment win over the file.
func Load() (*AppConfig, error) {
	envFile := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, err
		}
	}

	cfg := &AppConfig{
		StoreBackend: store.BackendFile,
		DataDir:      defaultDataDir(),
		RedisPrefix:  "tracker",
		Locale:       "it",
		Timezone:     "Europe/Rome",
		Log: obslog.Options{
			Level:  "info",
			Format: "legacy",
			ToFile: true,
			File:   filepath.Join("logs", "tracker.log"),
		},
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))); v != "" {
		cfg.StoreBackend = v
	}
	if v := strings.TrimSpace(os.Getenv("DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if v := strings.TrimSpace(os.Getenv("REDIS_PREFIX")); v != "" {
		cfg.RedisPrefix = v
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("SEED_OPPONENTS")); v != "" {
		for _, p := range strings.Split(v, ",") {
			s := strings.TrimSpace(p)
			if s != "" {
				cfg.SeedOpponents = append(cfg.SeedOpponents, s)
			}
		}
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LOCALE"))); v != "" {
		cfg.Locale = v
	}
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))
	if v := strings.TrimSpace(os.Getenv("TIMEZONE")); v != "" {
		cfg.Timezone = v
	}
	cfg.UserName = strings.TrimSpace(os.Getenv("USER_NAME"))

	// Logging
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_TO_CONSOLE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.ToConsole = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_TO_FILE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.ToFile = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_CALLER")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Caller = b
		}
	}

	switch cfg.StoreBackend {
	case store.BackendFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DATA_DIR is required for the file backend")
		}
	case store.BackendMemory:
	case store.BackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required for the redis backend")
		}
	case store.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, errors.New("STORE_BACKEND must be one of file, memory, redis, postgres")
	}

	return cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "chess-tracker")
	}
	return "data"
}
