package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	APIBaseURL  string
	SessionFile string
	LogFile     string
	ServerPort  string
	RedisURL    string
}

func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("VRS_API_URL", "http://localhost:8080"),
		SessionFile: getEnv("VRS_SESSION_FILE", defaultSessionFile()),
		LogFile:     getEnv("VRS_LOG_FILE", "./logs/vrs.log"),
		ServerPort:  getEnv("PORT", "8080"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vrs/session.json"
	}
	return filepath.Join(home, ".vrs", "session.json")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
