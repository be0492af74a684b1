package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	PostgresURL string
	Debug       bool
}

// Load reads the optional .env file and the process environment. Every field
// has a working default so the binary runs with no configuration at all.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        os.Getenv("PORT"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		Debug:       os.Getenv("DEBUG") == "true",
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}
