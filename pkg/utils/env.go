package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file if present; missing files are not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load .env: %v", err)
		}
	}
}

// GetEnv returns the environment variable value or the fallback when unset.
func GetEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
