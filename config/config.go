package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config reads a variable from .env / environment
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment variables")
		}
		loaded = true
	}
	return os.Getenv(key)
}

// ConfigOr returns the value for key, or fallback when unset
func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
