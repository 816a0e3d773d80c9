package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	AIServiceURL string
	LogMode      string
	TemplatesDir string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// ignore error if no .env file exists
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "3000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AIServiceURL: os.Getenv("AI_SERVICE_URL"),
		LogMode:      getEnv("LOG_MODE", "dev"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
