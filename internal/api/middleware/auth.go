package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/api/metrics"
	"github.com/modacart/commerce-api/internal/core/ports"
)

// UserContextKey is where the session middleware stores the resolved user.
const UserContextKey = "user"

// accessTokenCookie is the cookie carrying the short-lived credential.
const accessTokenCookie = "accessToken"

// Session validates the access token and attaches the user to the request
// context. The token is read from the accessToken cookie, falling back to
// the Authorization header for non-browser clients.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired access token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
