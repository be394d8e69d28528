package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedSessions stores revoked session IDs in Redis until their tokens
// would have expired anyway.
// Key format: session:revoked:<jti>
type RevokedSessions struct {
	client *redis.Client
}

// NewRevokedSessions creates a RevokedSessions store wrapping the given client.
func NewRevokedSessions(client *redis.Client) *RevokedSessions {
	return &RevokedSessions{client: client}
}

// Revoke marks the session ID as invalid for the remaining token lifetime.
func (s *RevokedSessions) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session ID has been revoked.
func (s *RevokedSessions) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevokedSessions) key(jti string) string {
	return "session:revoked:" + jti
}
