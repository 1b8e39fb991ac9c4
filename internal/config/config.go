package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	DatabaseURL    string
	TokenSecret    string
	TokenTTL       time.Duration
	AllowedOrigins []string

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration
}

// Load reads configuration from the environment, with a .env file as a
// fallback source. DATABASE_URL may be empty; main falls back to the
// in-memory store in that case.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getenv("PORT", "4000"),
		Env:            getenv("ENV", "dev"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		TokenSecret:    getenv("TOKEN_SECRET", ""),
		TokenTTL:       getDuration("TOKEN_TTL", 24*time.Hour),
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "*"), ","),
		DBMaxOpen:      getInt("DB_MAX_OPEN", 25),
		DBMaxIdle:      getInt("DB_MAX_IDLE", 25),
		DBMaxLifetime:  getDuration("DB_MAX_LIFETIME", 5*time.Minute),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
