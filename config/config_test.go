package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/identity")
	t.Setenv("TOKEN_SIGNING_KEY", "test-signing-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnvVars(t)

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/identity", cfg.MongoURI)
	assert.Equal(t, "test-signing-key", cfg.SigningKey)
	assert.Equal(t, "http://localhost:3000", cfg.TokenIssuer)
	assert.Equal(t, "http://localhost:3000", cfg.TokenAudience)
	assert.Equal(t, 10, cfg.TokenExpiryMin)
	assert.Empty(t, cfg.SentryDSN)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_ISSUER", "https://id.example.com")
	t.Setenv("TOKEN_AUDIENCE", "https://api.example.com")
	t.Setenv("TOKEN_EXPIRY", "30")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://id.example.com", cfg.TokenIssuer)
	assert.Equal(t, "https://api.example.com", cfg.TokenAudience)
	assert.Equal(t, 30, cfg.TokenExpiryMin)
}

func TestLoad_InvalidExpiryFallsBackToDefault(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TOKEN_EXPIRY", "not-a-number")

	cfg := Load()

	assert.Equal(t, 10, cfg.TokenExpiryMin)
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("SOME_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("SOME_MISSING_INT", 7))
}
