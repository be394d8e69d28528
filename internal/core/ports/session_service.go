package ports

import (
	"context"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// SessionService binds authenticated users to unforgeable session tokens.
type SessionService interface {
	// Issue signs a new session token for the user.
	Issue(ctx context.Context, user *domain.User) (string, error)
	// Validate checks signature, expiry, and revocation; returns the bound
	// identity or domain.ErrUnauthenticated.
	Validate(ctx context.Context, token string) (*domain.Identity, error)
	// Revoke invalidates the token until its natural expiry (logout).
	Revoke(ctx context.Context, token string) error
}
