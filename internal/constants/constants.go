package constants

const (
	EnvDevelopment      = "development"
	EnvProduction       = "production"
	EnvTest             = "test"
	CsrfInputName       = "_csrf"
	CsrfHeaderName      = "X-CSRF-Token"
	CsrfTokenContextKey = "csrf.token"
	SessionCookieName   = "signupform_session_id"
	CsrfCookieName      = "signupform_csrf"
	HxRequestHeader     = "HX-Request"
	SignupPath          = "/signup"
)
