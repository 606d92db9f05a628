package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

// NonceKey holds the per-request script nonce in both the echo and the
// request context.
const NonceKey contextKey = "csp_nonce"

const nonceBytes = 16

// GenerateNonce returns 16 random bytes, URL-safe base64 encoded
func GenerateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// cspHeader is the landing page policy. Inline scripts must carry the nonce;
// htmx loads from unpkg and the confetti bundle from jsDelivr.
func cspHeader(nonce string) string {
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'nonce-" + nonce + "' https://unpkg.com https://cdn.jsdelivr.net",
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
		"img-src 'self' data:",
		"font-src 'self' https://fonts.gstatic.com",
		"connect-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")
}

// CSPNonce issues a fresh nonce per request and sends the matching
// Content-Security-Policy. Pages read the nonce back with GetNonce.
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				// A guessable nonce would void the policy
				Logger(c).Error("csp nonce unavailable", zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
			}

			c.Set(string(NonceKey), nonce)
			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), NonceKey, nonce)))
			c.Response().Header().Set("Content-Security-Policy", cspHeader(nonce))
			return next(c)
		}
	}
}

// GetNonce returns the request's nonce, or "" outside CSPNonce.
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(NonceKey).(string)
	return nonce
}
