package app

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"signupform/internal/constants"
	"signupform/internal/forms"
	"signupform/internal/view"
	signupviews "signupform/views/signup"
	"strings"
)

type SignupHandlers struct {
	metrics *Metrics
}

// Form renders an empty signup form.
func (s *SignupHandlers) Form(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, forms.NewSignup())
}

// Submit applies the posted fields, validates them and re-renders the form with any messages.
func (s *SignupHandlers) Submit(c *fiber.Ctx) error {
	if !isFormBody(c) {
		return fiber.ErrUnsupportedMediaType
	}

	var body forms.State
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	form := forms.NewSignup()
	for _, field := range forms.Fields {
		form.Set(field, body.Get(field))
	}

	errs := form.Submit()
	s.metrics.ObserveSubmission(errs)

	fiberlog.Debugw("signup submitted", "failed", errs.Fields())

	status := fiber.StatusOK
	if !errs.Valid() {
		status = fiber.StatusUnprocessableEntity
	}

	return s.render(c, status, form)
}

// render sends only the form to htmx requests, which swap it in place.
func (s *SignupHandlers) render(c *fiber.Ctx, status int, form *forms.Signup) error {
	if c.Get(constants.HxRequestHeader) == "true" {
		return view.RenderComponent(c, status, signupviews.Form(form))
	}
	return view.RenderComponent(c, status, signupviews.Page(form))
}

func isFormBody(c *fiber.Ctx) bool {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	return strings.HasPrefix(contentType, fiber.MIMEApplicationForm) ||
		strings.HasPrefix(contentType, fiber.MIMEMultipartForm)
}
