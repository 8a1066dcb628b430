package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

// AuthService implements signup, login, logout, refresh and the per-request
// session resolution used by the middleware.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	store  ports.RefreshTokenStore
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, store ports.RefreshTokenStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, store: store, log: log}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}

	return s.establishSession(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same generic failure for unknown email and bad password.
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.establishSession(ctx, user)
}

// establishSession issues a token pair and overwrites the stored refresh
// token, invalidating any previously issued one for this user.
func (s *AuthService) establishSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &ports.AuthResult{User: user, Tokens: pair}, nil
}

// Logout deletes the stored refresh token. A missing or invalid token is not
// an error; logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete refresh token record")
		return err
	}
	return nil
}

// Refresh issues a new access token after checking the presented refresh
// token byte-for-byte against the stored record (covers revocation).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidToken
	}
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	stored, err := s.store.Get(ctx, userID)
	if err != nil || stored != refreshToken {
		return "", domain.ErrInvalidToken
	}
	return s.tokens.IssueAccess(userID)
}

// Authenticate resolves an access token to its user record, excluding the
// password hash. No cache round-trip: the short-lived token is validated
// locally and revocation happens at the refresh boundary.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user.PasswordHash = ""
	return user, nil
}
