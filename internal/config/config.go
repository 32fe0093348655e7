package config

import (
	"embed"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"os"
	"signupform/internal/constants"
	"signupform/static"
	"strings"
)

const DefaultPort = "3000"

// Config is the global config for the app router.
type Config struct {
	Env              string
	Host             string
	Port             string
	LogLevel         string
	CookieSecure     bool
	CsrfDisabled     bool
	DisableLogColors bool
	EnableStackTrace bool
	StaticFS         embed.FS
}

func NewConfigFromEnvironment(staticFS embed.FS) Config {
	env := os.Getenv("ENV")

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	return Config{
		Env:              env,
		Host:             os.Getenv("HOST"),
		Port:             port,
		LogLevel:         os.Getenv("LOG_LEVEL"),
		CookieSecure:     env == constants.EnvProduction,
		CsrfDisabled:     os.Getenv("CSRF_DISABLED") == "true",
		DisableLogColors: env == constants.EnvProduction,
		EnableStackTrace: env == constants.EnvDevelopment,
		StaticFS:         staticFS,
	}
}

// NewTestConfig returns a config for tests. CSRF is off so tests can post forms directly.
func NewTestConfig() *Config {
	return &Config{
		Env:              constants.EnvTest,
		Port:             DefaultPort,
		LogLevel:         "error",
		CsrfDisabled:     true,
		DisableLogColors: true,
		StaticFS:         static.FS,
	}
}

// Addr is the address to listen on.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// FiberLogLevel maps LogLevel onto a fiber log level, defaulting to info.
func (c Config) FiberLogLevel() fiberlog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return fiberlog.LevelTrace
	case "debug":
		return fiberlog.LevelDebug
	case "warn":
		return fiberlog.LevelWarn
	case "error":
		return fiberlog.LevelError
	default:
		return fiberlog.LevelInfo
	}
}
