package components

import (
	"context"
	"signupform/internal/constants"
)

// GetCsrfToken returns the token the csrf middleware stored for this request, or "" when csrf is off.
func GetCsrfToken(ctx context.Context) string {
	if csrfToken, ok := ctx.Value(constants.CsrfTokenContextKey).(string); ok {
		return csrfToken
	}
	return ""
}
