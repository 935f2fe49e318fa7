package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/trackd/internal/planner"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ranking.WindowDays != planner.DefaultWindowDays {
		t.Fatalf("expected default window, got %d", cfg.Ranking.WindowDays)
	}
	if cfg.Ranking.Limit != planner.DefaultLimit {
		t.Fatalf("expected default limit, got %d", cfg.Ranking.Limit)
	}
	if cfg.Database.Path == "" || cfg.Log.Path == "" {
		t.Fatalf("expected resolved paths: %#v", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected info level, got %q", cfg.Log.Level)
	}
}

func TestLoadPartialFileBackfillsDefaults(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	dir := filepath.Join(configHome, "trackd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "[ranking]\nwindow_days = 30\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ranking.WindowDays != 30 {
		t.Fatalf("file value lost, got %d", cfg.Ranking.WindowDays)
	}
	if cfg.Ranking.Limit != planner.DefaultLimit {
		t.Fatalf("limit should fall back to default, got %d", cfg.Ranking.Limit)
	}
	if cfg.Database.Path == "" {
		t.Fatal("db path should fall back to XDG data dir")
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("TRACKD_DB_PATH", "/tmp/override.db")
	t.Setenv("TRACKD_RANK_LIMIT", "25")
	t.Setenv("TRACKD_RANK_WINDOW_DAYS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Fatalf("db override lost, got %q", cfg.Database.Path)
	}
	if cfg.Ranking.Limit != 25 {
		t.Fatalf("limit override lost, got %d", cfg.Ranking.Limit)
	}
	if cfg.Ranking.WindowDays != planner.DefaultWindowDays {
		t.Fatalf("garbage env should be ignored, got %d", cfg.Ranking.WindowDays)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	cfg.Ranking.WindowDays = 7
	cfg.Log.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Ranking.WindowDays != 7 || reloaded.Log.Level != "debug" {
		t.Fatalf("round trip lost values: %#v", reloaded)
	}
}
