package app

import (
	"errors"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"net/http"
	"signupform/internal/config"
	"signupform/internal/constants"
	"signupform/internal/view"
	errorviews "signupform/views/errors"
	"time"
)

// New builds the app with a fresh metrics registry.
func New(config *config.Config) *fiber.App {
	return NewWithMetrics(config, NewMetrics())
}

func NewWithMetrics(config *config.Config, metrics *Metrics) *fiber.App {
	fiberlog.SetLevel(config.FiberLogLevel())
	fiberlog.Debug("Starting app with config:", config)

	app := fiber.New(fiber.Config{
		AppName:      "SignupForm 0.1.0",
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New(logger.Config{
		DisableColors: config.DisableLogColors,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.EnableStackTrace,
	}))
	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(favicon.New())
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(config.StaticFS),
	}))

	if !config.CsrfDisabled {
		app.Use(newCsrf(config))
	}

	app.Get("/metrics", metrics.Handler())

	signup := SignupHandlers{metrics: metrics}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(constants.SignupPath, fiber.StatusFound)
	})
	app.Get(constants.SignupPath, signup.Form)
	app.Post(constants.SignupPath, signup.Submit)

	return app
}

// newCsrf stores tokens in an in-memory session, which is all the single form needs.
func newCsrf(config *config.Config) fiber.Handler {
	sessionStore := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + constants.SessionCookieName,
		CookieSecure:   config.CookieSecure,
		CookieHTTPOnly: true,
	})

	// Combine two CSRF extractors: use form field as default
	// so forms work without JS, with header as fallback.
	csrfFromForm := csrf.CsrfFromForm(constants.CsrfInputName)
	csrfFromHeader := csrf.CsrfFromHeader(constants.CsrfHeaderName)

	return csrf.New(csrf.Config{
		CookieSecure: config.CookieSecure,
		Session:      sessionStore,
		Extractor: func(c *fiber.Ctx) (string, error) {
			token, err := csrfFromForm(c)
			if err == nil {
				return token, nil
			}

			if errors.Is(err, csrf.ErrMissingForm) {
				return csrfFromHeader(c)
			}

			// unexpected programmer error
			panic(err)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			fiberlog.Error("CSRF error: ", err.Error())
			return view.RenderComponent(c, fiber.StatusForbidden,
				errorviews.GenericError(fiber.StatusForbidden, "Forbidden"))
		},
		ContextKey: constants.CsrfTokenContextKey,
		CookieName: constants.CsrfCookieName,
	})
}
