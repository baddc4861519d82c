package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/tograil/Mongocore/pkg/constant"
)

type Config struct {
	Env            string
	Port           string
	MongoURI       string
	SigningKey     string
	TokenIssuer    string
	TokenAudience  string
	TokenExpiryMin int
	SentryDSN      string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		MongoURI:       mustGetEnv("MONGO_URI"),
		SigningKey:     mustGetEnv("TOKEN_SIGNING_KEY"),
		TokenIssuer:    getEnv("TOKEN_ISSUER", "http://localhost:3000"),
		TokenAudience:  getEnv("TOKEN_AUDIENCE", "http://localhost:3000"),
		TokenExpiryMin: getEnvAsInt("TOKEN_EXPIRY", constant.DefaultTokenExpiryMin),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
