package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alert-relay/internal/alert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "API_PORT", "RESEND_API_KEY", "RESEND_BASE_URL", "UPSTREAM_TIMEOUT_SECONDS",
		"AUTH_SECRET", "AUTH_HEADER", "MESSAGE_ESCAPE_MODE", "SHUTDOWN_TIMEOUT_SECONDS", "MAX_BODY_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8787", cfg.APIPort)
	assert.Equal(t, "https://api.resend.com/", cfg.ResendBaseURL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "Authorization", cfg.AuthHeader)
	assert.Equal(t, alert.EscapeModeRaw, cfg.MessageEscapeMode)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.EqualValues(t, DefaultMaxBodyBytes, cfg.MaxBodyBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_PORT", "9000")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("AUTH_HEADER", "X-Relay-Secret")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")
	t.Setenv("MESSAGE_ESCAPE_MODE", "Escape")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.APIPort)
	assert.Equal(t, "re_test", cfg.ResendAPIKey)
	assert.Equal(t, "s3cret", cfg.AuthSecret)
	assert.Equal(t, "X-Relay-Secret", cfg.AuthHeader)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, alert.EscapeModeEscape, cfg.MessageEscapeMode)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.EqualValues(t, 4096, cfg.BodyLimit())
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ResendAPIKey:      "re_test",
			AuthSecret:        "s3cret",
			AuthHeader:        "Authorization",
			MessageEscapeMode: alert.EscapeModeRaw,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.ResendAPIKey = "" }, wantErr: "RESEND_API_KEY"},
		{name: "missing secret", mutate: func(c *Config) { c.AuthSecret = "" }, wantErr: "AUTH_SECRET"},
		{name: "empty header", mutate: func(c *Config) { c.AuthHeader = "" }, wantErr: "AUTH_HEADER"},
		{name: "negative timeout", mutate: func(c *Config) { c.UpstreamTimeout = -time.Second }, wantErr: "UPSTREAM_TIMEOUT_SECONDS"},
		{name: "negative body limit", mutate: func(c *Config) { c.MaxBodyBytes = -1 }, wantErr: "MAX_BODY_BYTES"},
		{name: "unknown mode", mutate: func(c *Config) { c.MessageEscapeMode = "markdown" }, wantErr: "MESSAGE_ESCAPE_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	assert.EqualValues(t, DefaultMaxBodyBytes, (&Config{}).BodyLimit())
	assert.EqualValues(t, 512, (&Config{MaxBodyBytes: 512}).BodyLimit())
}
