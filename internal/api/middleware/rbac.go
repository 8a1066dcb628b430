package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// AdminOnly rejects requests whose session user is not an admin. Must run
// after Session.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserContextKey).(*domain.User)
			if user == nil || !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied - admin only"})
			}
			return next(c)
		}
	}
}
