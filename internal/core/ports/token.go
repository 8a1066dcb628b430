package ports

import "context"

// TokenPair is the two signed credentials issued on signup and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer signs and verifies the two token classes. Each class uses its
// own secret so possession of one cannot forge the other.
type TokenIssuer interface {
	IssuePair(userID string) (TokenPair, error)
	// IssueAccess mints a fresh access token only (used by the refresh flow).
	IssueAccess(userID string) (string, error)
	// VerifyAccess returns the user id bound in a valid, unexpired access
	// token, or domain.ErrInvalidToken.
	VerifyAccess(token string) (string, error)
	VerifyRefresh(token string) (string, error)
}

// RefreshTokenStore persists the currently valid refresh token per user.
// Presence and byte-equality form the revocation check; Delete revokes.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID, token string) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}
