package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenService signs and verifies the access/refresh token pair. Each token
// class has its own HS256 secret.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTokenTTL,
		refreshTTL:    RefreshTokenTTL,
	}
}

func (s *TokenService) IssuePair(userID string) (ports.TokenPair, error) {
	access, err := s.sign(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) IssueAccess(userID string) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

func (s *TokenService) VerifyAccess(token string) (string, error) {
	return s.verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefresh(token string) (string, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (s *TokenService) verify(token string, secret []byte) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}
