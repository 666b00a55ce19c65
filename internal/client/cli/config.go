package cli

import (
	"os"
	"path/filepath"
)

type Config struct {
	ServerURL string // RECIPEBOX_URL (default: http://localhost:8080)
	StatePath string // RECIPEBOX_STATE (default: ~/.recipebox/state.db)
}

func LoadConfig() Config {
	return Config{
		ServerURL: getEnvOrDefault("RECIPEBOX_URL", "http://localhost:8080"),
		StatePath: getEnvOrDefault("RECIPEBOX_STATE", defaultStatePath()),
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipebox-state.db"
	}
	return filepath.Join(home, ".recipebox", "state.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
