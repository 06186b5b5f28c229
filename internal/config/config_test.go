package config

import (
	"os"
	"path/filepath"
	"testing"
)

var configKeys = []string{
	"ENV_FILE", "STORE_BACKEND", "DATA_DIR", "REDIS_URL", "REDIS_PREFIX", "DATABASE_URL",
	"SEED_OPPONENTS", "LOCALE", "MESSAGES_DIR", "TIMEZONE", "USER_NAME",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_TO_CONSOLE", "LOG_TO_FILE", "LOG_FILE", "LOG_CALLER",
}

// clearEnv unsets every config key for the test; t.Setenv restores the previous values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreBackend != "file" || cfg.DataDir == "" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.Locale != "it" || cfg.Timezone != "Europe/Rome" || cfg.RedisPrefix != "tracker" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Log.ToFile || cfg.Log.ToConsole {
		t.Fatalf("CLI should log to file only by default: %+v", cfg.Log)
	}
	if len(cfg.SeedOpponents) != 0 {
		t.Fatalf("seed should be empty unless configured: %v", cfg.SeedOpponents)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", " Redis ")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("REDIS_PREFIX", "me")
	t.Setenv("SEED_OPPONENTS", " Pele, ,Magnus ,")
	t.Setenv("LOCALE", "EN")
	t.Setenv("LOG_TO_CONSOLE", "true")
	t.Setenv("LOG_TO_FILE", "nope")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreBackend != "redis" || cfg.RedisPrefix != "me" {
		t.Fatalf("unexpected store config: %+v", cfg)
	}
	if len(cfg.SeedOpponents) != 2 || cfg.SeedOpponents[0] != "Pele" || cfg.SeedOpponents[1] != "Magnus" {
		t.Fatalf("unexpected seed: %v", cfg.SeedOpponents)
	}
	if cfg.Locale != "en" {
		t.Fatalf("locale should be lower-cased, got %q", cfg.Locale)
	}
	if !cfg.Log.ToConsole || !cfg.Log.ToFile || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log options: %+v", cfg.Log)
	}
}

func TestLoadValidatesBackend(t *testing.T) {
	for _, backend := range []string{"redis", "postgres", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORE_BACKEND", backend)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for backend %s without its settings", backend)
			}
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tracker.env")
	body := "STORE_BACKEND=memory\nUSER_NAME=Giulia\nTIMEZONE=UTC\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("TIMEZONE", "Europe/Paris")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreBackend != "memory" || cfg.UserName != "Giulia" {
		t.Fatalf("env file values not applied: %+v", cfg)
	}
	if cfg.Timezone != "Europe/Paris" {
		t.Fatalf("process env must win over the file, got %q", cfg.Timezone)
	}
}
