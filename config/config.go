package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs at startup. It is built
// once in main and handed to the pieces that need it; nothing reads the
// environment after Load returns.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DBPath is the sqlite database file.
	DBPath string
	// BaseURL, when set, is used as the prefix of the attend URL encoded
	// into QR images. When empty the URL is derived from the request host.
	BaseURL string
	// RotateEvery is the minimum age of the current QR code before the
	// next poll of the QR endpoint replaces it.
	RotateEvery time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	return Config{
		Addr:        getEnv("ADDR", ":8080"),
		DBPath:      getEnv("DB_PATH", "attendance.db"),
		BaseURL:     os.Getenv("BASE_URL"),
		RotateEvery: time.Duration(getEnvInt("ROTATE_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, falling back to %d", key, v, fallback)
		return fallback
	}
	return n
}
