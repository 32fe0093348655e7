package config

import (
	"embed"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
	"signupform/internal/constants"
	"testing"
)

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENV", constants.EnvProduction)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CSRF_DISABLED", "")

	cfg := NewConfigFromEnvironment(embed.FS{})

	assert.Equal(t, "127.0.0.1:"+DefaultPort, cfg.Addr())
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.DisableLogColors)
	assert.False(t, cfg.EnableStackTrace)
	assert.False(t, cfg.CsrfDisabled)
	assert.Equal(t, fiberlog.LevelDebug, cfg.FiberLogLevel())
}

func TestNewConfigFromEnvironmentDevelopment(t *testing.T) {
	t.Setenv("ENV", constants.EnvDevelopment)
	t.Setenv("PORT", "8080")
	t.Setenv("CSRF_DISABLED", "true")

	cfg := NewConfigFromEnvironment(embed.FS{})

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.EnableStackTrace)
	assert.True(t, cfg.CsrfDisabled)
}

func TestFiberLogLevel(t *testing.T) {
	tests := map[string]fiberlog.Level{
		"":      fiberlog.LevelInfo,
		"info":  fiberlog.LevelInfo,
		"WARN":  fiberlog.LevelWarn,
		"error": fiberlog.LevelError,
		"trace": fiberlog.LevelTrace,
		"bogus": fiberlog.LevelInfo,
	}

	for level, want := range tests {
		assert.Equal(t, want, Config{LogLevel: level}.FiberLogLevel(), level)
	}
}
