package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://nexlearn-mauve.vercel.app"},
		parseOrigins(" http://localhost:5173 , ,https://nexlearn-mauve.vercel.app"),
	)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY_MINUTES", "")
	t.Setenv("SMTP_USERNAME", "relay@example.com")
	t.Setenv("CONTACT_INBOX", "")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "relay@example.com", cfg.ContactInbox)
	assert.Len(t, cfg.AllowedOrigins, 2)
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := &Config{}
	require.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.JWTSecret = "   "
	require.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("NEXLEARN_TEST_INT", "abc")
	assert.Equal(t, 7, getEnvInt("NEXLEARN_TEST_INT", 7))
	t.Setenv("NEXLEARN_TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("NEXLEARN_TEST_INT", 7))
}
