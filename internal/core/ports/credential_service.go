package ports

import (
	"context"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// CredentialService owns account creation and password verification.
type CredentialService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	ListOtherUsers(ctx context.Context, excludeID int64) ([]domain.User, error)
}
