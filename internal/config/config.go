package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	DataFile         string
	LeaderboardLimit int
	SoundURL         string
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataFile:         getEnv("DATA_FILE", "data/clicker.json"),
		LeaderboardLimit: getEnvInt("LEADERBOARD_LIMIT", 10),
		SoundURL:         os.Getenv("SOUND_URL"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
