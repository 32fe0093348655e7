package app

import (
	"bytes"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"signupform/internal/config"
	"signupform/internal/forms"
	"strings"
	"testing"
)

var testApp *fiber.App

func TestMain(m *testing.M) {
	testApp = New(config.NewTestConfig())

	os.Exit(m.Run())
}

var allMessages = []string{
	forms.MsgInvalidEmail,
	forms.MsgPasswordTooShort,
	forms.MsgPasswordMismatch,
}

// send performs req and returns the status and the unescaped body.
func send(t *testing.T, a *fiber.App, req *http.Request) (int, string) {
	t.Helper()

	resp, err := a.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, html.UnescapeString(string(body))
}

func newSignupRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func TestRootRedirectsToSignup(t *testing.T) {
	resp, err := testApp.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signup", resp.Header.Get("Location"))
}

func TestSignupFormIsInitiallyEmpty(t *testing.T) {
	status, body := send(t, testApp, httptest.NewRequest(http.MethodGet, "/signup", nil))

	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, `<label for="email" class="form-label">Email address</label>`)
	assert.Contains(t, body, `<label for="password" class="form-label">Password</label>`)
	assert.Contains(t, body, `<label for="confirm-password" class="form-label">Confirm Password</label>`)
	assert.Contains(t, body, `id="email" name="email" class="form-control" value=""`)
	assert.Contains(t, body, `id="password" name="password" class="form-control" value=""`)
	assert.Contains(t, body, `id="confirm-password" name="confirmPassword" class="form-control" value=""`)
	assert.Contains(t, body, `<button type="submit" class="btn btn-primary">Submit</button>`)

	for _, msg := range allMessages {
		assert.NotContains(t, body, msg)
	}
}

func TestSubmitSignup(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		wantStatus int
		want       []string
		notWant    []string
	}{
		{
			name:       "invalid email",
			values:     url.Values{"email": {"selenagmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"}},
			wantStatus: fiber.StatusUnprocessableEntity,
			want:       []string{forms.MsgInvalidEmail},
			notWant:    []string{forms.MsgPasswordTooShort, forms.MsgPasswordMismatch},
		},
		{
			name:       "invalid email with empty passwords",
			values:     url.Values{"email": {"selenagmail.com"}},
			wantStatus: fiber.StatusUnprocessableEntity,
			want:       []string{forms.MsgInvalidEmail},
		},
		{
			name:       "short password",
			values:     url.Values{"email": {"selena@gmail.com"}, "password": {"secr"}},
			wantStatus: fiber.StatusUnprocessableEntity,
			want:       []string{forms.MsgPasswordTooShort},
			notWant:    []string{forms.MsgInvalidEmail},
		},
		{
			name:       "passwords do not match",
			values:     url.Values{"email": {"selena@gmail.com"}, "password": {"secret"}, "confirmPassword": {"nosecret"}},
			wantStatus: fiber.StatusUnprocessableEntity,
			want:       []string{forms.MsgPasswordMismatch},
			notWant:    []string{forms.MsgInvalidEmail, forms.MsgPasswordTooShort},
		},
		{
			name:       "every input valid",
			values:     url.Values{"email": {"selena@gmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"}},
			wantStatus: fiber.StatusOK,
			notWant:    allMessages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := send(t, testApp, newSignupRequest(tt.values))

			assert.Equal(t, tt.wantStatus, status)
			for _, msg := range tt.want {
				assert.Contains(t, body, msg)
			}
			for _, msg := range tt.notWant {
				assert.NotContains(t, body, msg)
			}
		})
	}
}

func TestSubmitKeepsTypedValues(t *testing.T) {
	_, body := send(t, testApp, newSignupRequest(url.Values{"email": {"selena@gmail.com"}}))

	assert.Contains(t, body, `name="email" class="form-control" value="selena@gmail.com"`)
	assert.Contains(t, body, `name="password" class="form-control" value=""`)
	assert.Contains(t, body, `name="confirmPassword" class="form-control" value=""`)
}

func TestResubmitDoesNotKeepFixedErrors(t *testing.T) {
	_, body := send(t, testApp, newSignupRequest(url.Values{
		"email": {"selenagmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"},
	}))
	require.Contains(t, body, forms.MsgInvalidEmail)

	_, body = send(t, testApp, newSignupRequest(url.Values{
		"email": {"selena@gmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"},
	}))
	assert.NotContains(t, body, forms.MsgInvalidEmail)
}

func TestSubmitFromHtmxReturnsFragment(t *testing.T) {
	req := newSignupRequest(url.Values{"email": {"selenagmail.com"}})
	req.Header.Set("HX-Request", "true")

	status, body := send(t, testApp, req)

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.True(t, strings.HasPrefix(body, `<form id="signup-form"`), body)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, forms.MsgInvalidEmail)
}

func TestSubmitRejectsJson(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"selena@gmail.com"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	status, _ := send(t, testApp, req)

	assert.Equal(t, fiber.StatusUnsupportedMediaType, status)
}

func TestNotFound(t *testing.T) {
	status, body := send(t, testApp, httptest.NewRequest(http.MethodGet, "/lists", nil))

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, body, "404 Not Found")
}

func newCsrfApp() *fiber.App {
	cfg := config.NewTestConfig()
	cfg.CsrfDisabled = false
	return New(cfg)
}

func TestCsrfTokenIsRendered(t *testing.T) {
	status, body := send(t, newCsrfApp(), httptest.NewRequest(http.MethodGet, "/signup", nil))

	require.Equal(t, fiber.StatusOK, status)
	assert.Regexp(t, regexp.MustCompile(`name="_csrf" value="[^"]+"`), body)
}

func TestCsrfRejectsPostWithoutToken(t *testing.T) {
	status, body := send(t, newCsrfApp(), newSignupRequest(url.Values{
		"email": {"selena@gmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"},
	}))

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "403 Forbidden")
}

var csrfTokenPattern = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

// browser keeps cookies between requests like a user agent would.
type browser struct {
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func (b *browser) do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()

	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	resp, err := b.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, html.UnescapeString(string(body))
}

func csrfToken(t *testing.T, body string) string {
	t.Helper()

	m := csrfTokenPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "no csrf token in body")
	return m[1]
}

func TestCsrfTokenRoundTrip(t *testing.T) {
	b := &browser{app: newCsrfApp(), cookies: map[string]*http.Cookie{}}

	status, body := b.do(t, httptest.NewRequest(http.MethodGet, "/signup", nil))
	require.Equal(t, fiber.StatusOK, status)
	token := csrfToken(t, body)

	req := newSignupRequest(url.Values{
		"_csrf": {token}, "email": {"selenagmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"},
	})
	req.Header.Set("HX-Request", "true")

	status, body = b.do(t, req)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body, forms.MsgInvalidEmail)

	// the swapped in fragment must carry a token for the next submit
	token = csrfToken(t, body)

	req = newSignupRequest(url.Values{
		"_csrf": {token}, "email": {"selena@gmail.com"}, "password": {"secret"}, "confirmPassword": {"secret"},
	})
	req.Header.Set("HX-Request", "true")

	status, body = b.do(t, req)
	assert.Equal(t, fiber.StatusOK, status)
	for _, msg := range allMessages {
		assert.NotContains(t, body, msg)
	}
	assert.Regexp(t, csrfTokenPattern, body)
}

func TestSubmitAcceptsMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("email", "selena@gmail.com"))
	require.NoError(t, w.WriteField("password", "secr"))
	require.NoError(t, w.WriteField("confirmPassword", "secr"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/signup", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	status, body := send(t, testApp, req)

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body, forms.MsgPasswordTooShort)
	assert.Contains(t, body, `name="email" class="form-control" value="selena@gmail.com"`)
}

func TestSubmitDoesNotLogEmail(t *testing.T) {
	var out bytes.Buffer
	fiberlog.SetOutput(&out)

	cfg := config.NewTestConfig()
	cfg.LogLevel = "debug"
	a := New(cfg)

	t.Cleanup(func() {
		fiberlog.SetOutput(os.Stderr)
		fiberlog.SetLevel(config.NewTestConfig().FiberLogLevel())
	})

	send(t, a, newSignupRequest(url.Values{"email": {"selena@gmail.com"}, "password": {"secr"}}))

	assert.Contains(t, out.String(), "signup submitted")
	assert.NotContains(t, out.String(), "selena@gmail.com")
	assert.NotContains(t, out.String(), "secr")
}

func TestStaticAssetsAreServed(t *testing.T) {
	status, body := send(t, testApp, httptest.NewRequest(http.MethodGet, "/static/js/signup.js", nil))

	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "htmx:beforeSwap")
}

func TestPageKeepsDefaultEmbedderPolicy(t *testing.T) {
	resp, err := testApp.Test(httptest.NewRequest(http.MethodGet, "/signup", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "require-corp", resp.Header.Get("Cross-Origin-Embedder-Policy"))
	assert.Contains(t, string(body), `<script src="https://unpkg.com/htmx.org@1.9.10" crossorigin="anonymous">`)
	assert.Contains(t, string(body), `<script src="/static/js/signup.js" defer>`)
}
