package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("LEADERBOARD_LIMIT", "")
	t.Setenv("SOUND_URL", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "")
	}
	if cfg.DataFile != "data/clicker.json" {
		t.Errorf("DataFile = %q, want %q", cfg.DataFile, "data/clicker.json")
	}
	if cfg.LeaderboardLimit != 10 {
		t.Errorf("LeaderboardLimit = %d, want %d", cfg.LeaderboardLimit, 10)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/clicker")
	t.Setenv("DATA_FILE", "/tmp/clicker.json")
	t.Setenv("LEADERBOARD_LIMIT", "25")
	t.Setenv("SOUND_URL", "https://example.com/scream.mp3")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/clicker" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://localhost/clicker")
	}
	if cfg.DataFile != "/tmp/clicker.json" {
		t.Errorf("DataFile = %q, want %q", cfg.DataFile, "/tmp/clicker.json")
	}
	if cfg.LeaderboardLimit != 25 {
		t.Errorf("LeaderboardLimit = %d, want %d", cfg.LeaderboardLimit, 25)
	}
	if cfg.SoundURL != "https://example.com/scream.mp3" {
		t.Errorf("SoundURL = %q, want %q", cfg.SoundURL, "https://example.com/scream.mp3")
	}
}

func TestLoad_InvalidLeaderboardLimit(t *testing.T) {
	t.Setenv("LEADERBOARD_LIMIT", "abc")

	cfg := Load()

	if cfg.LeaderboardLimit != 10 {
		t.Errorf("LeaderboardLimit = %d, want %d (fallback)", cfg.LeaderboardLimit, 10)
	}
}
