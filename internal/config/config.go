package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DataFile  string
	AuthToken string
}

func LoadConfig() *Config {
	// Only load .env when one exists; deployed environments pass real
	// environment variables instead.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		}
	}

	return &Config{
		Port:      getEnv("PORT", "3000"),
		DataFile:  getEnv("DATA_FILE", "data.json"),
		AuthToken: getEnv("AUTH_TOKEN", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
