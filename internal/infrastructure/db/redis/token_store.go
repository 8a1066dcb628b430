package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists the currently valid refresh token per user.
// Key format: refresh_token:<user_id>. Presence and byte-equality of the
// stored value form the revocation check; Delete revokes.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore whose records expire after ttl,
// matching the refresh token's validity window.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Save(ctx context.Context, userID, token string) error {
	if err := s.client.Set(ctx, s.key(userID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("load refresh token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(userID string) string {
	return "refresh_token:" + userID
}
