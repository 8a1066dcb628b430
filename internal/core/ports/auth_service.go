package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// AuthResult is returned by flows that establish a session.
type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

// AuthService implements the account/session state machine:
// anonymous → authenticated (signup/login), authenticated → revoked (logout).
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout revokes the refresh token record. Idempotent; an absent or
	// already-revoked token is not an error.
	Logout(ctx context.Context, refreshToken string) error
	// Refresh validates the refresh token against the store and issues a new
	// access token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Authenticate resolves an access token to its user, excluding the
	// credential hash. Used by the session middleware on every request.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}
