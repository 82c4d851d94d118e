package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.MinPlayers != 3 {
		t.Fatalf("MinPlayers = %d, want 3", cfg.MinPlayers)
	}
	if cfg.QuestionQuota != 20 {
		t.Fatalf("QuestionQuota = %d, want 20", cfg.QuestionQuota)
	}
	if cfg.LastChanceSeconds != 60 {
		t.Fatalf("LastChanceSeconds = %d, want 60", cfg.LastChanceSeconds)
	}
	if cfg.RoomRetentionHours != 4 {
		t.Fatalf("RoomRetentionHours = %d, want 4", cfg.RoomRetentionHours)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MIN_PLAYERS", "5")
	t.Setenv("QUESTION_QUOTA", "10")
	t.Setenv("LAST_CHANCE_SECONDS", "30")

	cfg := Load()
	if cfg.MinPlayers != 5 || cfg.QuestionQuota != 10 || cfg.LastChanceSeconds != 30 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MIN_PLAYERS", "2") // below the floor the game needs
	t.Setenv("QUESTION_QUOTA", "not-a-number")
	t.Setenv("LAST_CHANCE_SECONDS", "-1")

	cfg := Load()
	if cfg.MinPlayers != 3 || cfg.QuestionQuota != 20 || cfg.LastChanceSeconds != 60 {
		t.Fatalf("invalid values leaked into config: %+v", cfg)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
}

func TestLoadDotEnvReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QUESTION_QUOTA=7\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("QUESTION_QUOTA", "")
	os.Unsetenv("QUESTION_QUOTA")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	defer os.Unsetenv("QUESTION_QUOTA")
	if cfg := Load(); cfg.QuestionQuota != 7 {
		t.Fatalf("QuestionQuota = %d, want 7", cfg.QuestionQuota)
	}
}
