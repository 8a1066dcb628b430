package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/modacart/commerce-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.CartItems = append([]domain.CartItem(nil), u.CartItems...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateCart(_ context.Context, userID string, items []domain.CartItem) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CartItems = append([]domain.CartItem(nil), items...)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubTokenStore struct {
	tokens map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, userID, token string) error {
	s.tokens[userID] = token
	return nil
}

func (s *stubTokenStore) Get(_ context.Context, userID string) (string, error) {
	return s.tokens[userID], nil
}

func (s *stubTokenStore) Delete(_ context.Context, userID string) error {
	delete(s.tokens, userID)
	return nil
}

func newAuthFixture() (*AuthService, *stubUserRepo, *stubTokenStore) {
	repo := newStubUserRepo()
	store := newStubTokenStore()
	tokens := NewTokenService("access-secret", "refresh-secret")
	return NewAuthService(repo, tokens, store, zerolog.Nop()), repo, store
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc, repo, store := newAuthFixture()

	result, err := svc.Signup(context.Background(), "Alice", "  Alice@Example.COM ", "sup3rsecret")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %s", result.User.Email)
	}
	if result.User.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", result.User.Role)
	}
	if result.User.PasswordHash != "" {
		t.Fatalf("password hash leaked into result")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", result.Tokens)
	}

	stored := repo.users[result.User.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sup3rsecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if store.tokens[result.User.ID] != result.Tokens.RefreshToken {
		t.Fatalf("refresh token not persisted")
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Signup(context.Background(), "Bob", "bob@example.com", "password1"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "Bobby", "BOB@example.com", "password2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Signup(context.Background(), "Carol", "carol@example.com", "s3cretpass"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "carol@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.User.PasswordHash != "" {
		t.Fatalf("password hash leaked into result")
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _ = svc.Signup(context.Background(), "Dave", "dave@example.com", "goodpass1")

	// Bad password and unknown email fail identically.
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_Refresh_IssuesNewAccessToken(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	result, err := svc.Signup(context.Background(), "Erin", "erin@example.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), access)
	if err != nil {
		t.Fatalf("new access token not accepted: %v", err)
	}
	if user.ID != result.User.ID {
		t.Fatalf("expected user %s, got %s", result.User.ID, user.ID)
	}
	if _, ok := repo.users[user.ID]; !ok {
		t.Fatalf("user missing from repo")
	}
}

func TestAuthService_Refresh_RejectsRevokedToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	result, err := svc.Signup(context.Background(), "Frank", "frank@example.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.Tokens.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// The token still carries a valid signature but the stored record is gone.
	if _, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthService_Refresh_RejectsSupersededToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	first, err := svc.Signup(context.Background(), "Grace", "grace@example.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// A later login overwrites the stored refresh token.
	if _, err := svc.Login(context.Background(), "grace@example.com", "password1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), first.Tokens.RefreshToken); err != domain.ErrInvalidToken {
		t.Fatalf("expected superseded token to be rejected, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty token should be a no-op: %v", err)
	}
	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("logout with garbage token should be a no-op: %v", err)
	}
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Authenticate(context.Background(), ""); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "garbage"); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	result, err := svc.Signup(context.Background(), "Heidi", "heidi@example.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	delete(repo.users, result.User.ID)

	if _, err := svc.Authenticate(context.Background(), result.Tokens.AccessToken); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for deleted user, got %v", err)
	}
}
