package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/api/metrics"
	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
	"github.com/modacart/commerce-api/internal/core/service"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// AuthHandler handles signup, login, logout, refresh and profile.
type AuthHandler struct {
	auth ports.AuthService
	// secureCookies marks session cookies Secure; enabled in production.
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Signup creates an account and establishes a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, result.Tokens)
	return c.JSON(http.StatusCreated, result.User)
}

// Login authenticates by email and password and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.AuthFailuresTotal.WithLabelValues("bad_login").Inc()
		}
		return err
	}

	h.setSessionCookies(c, result.Tokens)
	return c.JSON(http.StatusOK, result.User)
}

// Logout revokes the refresh token and clears both cookies. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), cookieValue(c, refreshTokenCookie)); err != nil {
		return err
	}

	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

// Refresh issues a new access token from a valid refresh token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	access, err := h.auth.Refresh(c.Request().Context(), cookieValue(c, refreshTokenCookie))
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(accessTokenCookie, access, service.AccessTokenTTL))
	return c.JSON(http.StatusOK, messageResponse{Message: "token refreshed"})
}

// Profile returns the session user.
//
// @Summary      Get the current user's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair ports.TokenPair) {
	c.SetCookie(h.sessionCookie(accessTokenCookie, pair.AccessToken, service.AccessTokenTTL))
	c.SetCookie(h.sessionCookie(refreshTokenCookie, pair.RefreshToken, service.RefreshTokenTTL))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(h.sessionCookie(accessTokenCookie, "", -time.Second))
	c.SetCookie(h.sessionCookie(refreshTokenCookie, "", -time.Second))
}

// sessionCookie builds an http-only, same-site-strict cookie; Secure is set
// in production. A negative ttl expires the cookie immediately.
func (h *AuthHandler) sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(ttl.Seconds())
	}
	return cookie
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
