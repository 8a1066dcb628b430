package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/api/middleware"
	"github.com/modacart/commerce-api/internal/core/domain"
)

// currentUser extracts the session user attached by the Session middleware.
// A missing user means the middleware did not run on this route; fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
