package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// BearerAuth requires "Authorization: Bearer <token>" to match the configured
// secret. An empty secret rejects every request, so an unconfigured service
// fails closed. Comparison is constant-time.
func BearerAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if token == "" || !strings.HasPrefix(auth, bearerPrefix) {
				return unauthorized(c)
			}
			got := strings.TrimPrefix(auth, bearerPrefix)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return unauthorized(c)
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": http.StatusText(http.StatusUnauthorized),
		"data":    "unauthorized",
	})
}
