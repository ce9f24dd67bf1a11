package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "FRONTEND_URL", "ALLOWED_ORIGINS", "PLAYER1", "PLAYER2",
		"SEARCH_TIMEOUT_SECONDS", "MATCH_IDLE_TTL_HOURS", "CLEANUP_INTERVAL_MINUTES", "LOG_LEVEL", "LOG_PRETTY"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.Player1 != "human" || cfg.Player2 != "ai:6" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SearchTimeout != 0 || cfg.MatchIdleTTL != 24*time.Hour || cfg.CleanupInterval != time.Hour {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if AppConfig != cfg {
		t.Fatal("AppConfig not set")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "http://example.test")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test, ,http://b.test")
	t.Setenv("PLAYER1", "ai:3")
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_PRETTY", "true")

	cfg := LoadConfig()
	if cfg.Port != "9000" || cfg.Player1 != "ai:3" || !cfg.LogPretty {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.SearchTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.SearchTimeout)
	}
	want := []string{"http://example.test", "http://a.test", "http://b.test"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Fatalf("origins = %v, want %v", cfg.AllowedOrigins, want)
		}
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SOME_INT", "ten")
	t.Setenv("SOME_BOOL", "maybe")
	if GetEnvAsInt("SOME_INT", 7) != 7 {
		t.Error("bad int should fall back to default")
	}
	if !GetEnvAsBool("SOME_BOOL", true) {
		t.Error("bad bool should fall back to default")
	}
}

func TestLoadEnvReadsUserFile(t *testing.T) {
	t.Cleanup(xdg.Reload)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	path := filepath.Join(dir, userEnvFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("ENGINE_USER_FILE_LEVEL=ai:9\nENGINE_USER_FILE_KEPT=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ENGINE_USER_FILE_KEPT", "env")
	os.Unsetenv("ENGINE_USER_FILE_LEVEL")
	t.Cleanup(func() { os.Unsetenv("ENGINE_USER_FILE_LEVEL") })

	LoadEnv()
	if got := os.Getenv("ENGINE_USER_FILE_LEVEL"); got != "ai:9" {
		t.Fatalf("user file value not loaded, got %q", got)
	}
	if got := os.Getenv("ENGINE_USER_FILE_KEPT"); got != "env" {
		t.Fatalf("environment should win over the user file, got %q", got)
	}
}
