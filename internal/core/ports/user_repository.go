package ports

import (
	"context"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with the assigned ID.
	// Returns domain.ErrDuplicateUsername when the username (or email, when
	// present) is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// ListExcept returns every user except the given one, ordered by ID ascending.
	ListExcept(ctx context.Context, excludeID int64) ([]domain.User, error)
}
