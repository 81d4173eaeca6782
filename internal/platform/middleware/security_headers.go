package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security response headers on
// every request. API responses carry patient records, so they additionally
// get a strict no-store cache policy; static assets keep normal caching.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			h.Set("X-Frame-Options", "DENY")

			// Disable browser XSS filter — modern best practice is to rely
			// on Content-Security-Policy instead of the legacy filter.
			h.Set("X-XSS-Protection", "0")

			// Do not send Referer header to downstream services.
			h.Set("Referrer-Policy", "no-referrer")

			// The app only needs geolocation, used for purok assignment.
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(self)")

			if strings.HasPrefix(c.Request().URL.Path, "/api/") {
				// Deny all resource loading for JSON API responses.
				h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

				// Prevent caching of responses that contain patient data.
				h.Set("Cache-Control", "no-store")
			}

			return next(c)
		}
	}
}
