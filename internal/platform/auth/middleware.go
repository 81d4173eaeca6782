package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey   = "auth_user_id"
	userNameKey = "auth_user_name"
	userRoleKey = "auth_user_role"
)

// Middleware returns echo middleware that requires a valid Bearer token on
// every request. The authenticated user's ID, name, and role are stored in
// the echo context for handlers to read.
func Middleware(issuer *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "Missing authorization header")
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return unauthorized(c, "Invalid authorization header")
			}

			claims, err := issuer.Parse(token)
			if err != nil {
				return unauthorized(c, "Invalid or expired session")
			}

			c.Set(userIDKey, claims.Subject)
			c.Set(userNameKey, claims.Name)
			c.Set(userRoleKey, claims.Role)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// UserID returns the authenticated user's ID, or "" when the request did not
// pass through Middleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// UserName returns the authenticated user's display name.
func UserName(c echo.Context) string {
	name, _ := c.Get(userNameKey).(string)
	return name
}

// UserRole returns the authenticated user's role.
func UserRole(c echo.Context) string {
	role, _ := c.Get(userRoleKey).(string)
	return role
}

// SetTestUser stores an identity in the context the same way Middleware
// does. Handler tests use it to simulate an authenticated request.
func SetTestUser(c echo.Context, id, name, role string) {
	c.Set(userIDKey, id)
	c.Set(userNameKey, name)
	c.Set(userRoleKey, role)
}
