package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"signupform/internal/forms"
)

const (
	SignupSubmissionsTotal          = "signup_submissions_total"
	SignupSubmissionsTotalHelp      = "Total number of signup form submissions, by result"
	SignupValidationErrorsTotal     = "signup_validation_errors_total"
	SignupValidationErrorsTotalHelp = "Total number of validation messages shown, by field"

	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Metrics counts signup submissions on its own registry.
type Metrics struct {
	Registry         *prometheus.Registry
	submissions      *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SignupSubmissionsTotal,
			Help: SignupSubmissionsTotalHelp,
		}, []string{"result"}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SignupValidationErrorsTotal,
			Help: SignupValidationErrorsTotalHelp,
		}, []string{"field"}),
	}
	m.Registry.MustRegister(m.submissions, m.validationErrors)
	return m
}

// ObserveSubmission records one submit and every field that failed.
func (m *Metrics) ObserveSubmission(errs forms.Errors) {
	if errs.Valid() {
		m.submissions.WithLabelValues(ResultValid).Inc()
		return
	}

	m.submissions.WithLabelValues(ResultInvalid).Inc()
	for field, msg := range errs {
		if msg != "" {
			m.validationErrors.WithLabelValues(string(field)).Inc()
		}
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
