package ports

import (
	"context"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// MessageRepository defines persistence operations for chat messages.
type MessageRepository interface {
	// Create inserts a new message and returns it with the assigned ID.
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// Thread returns every message exchanged between the two users, ordered by
	// ID ascending. The pair is unordered: Thread(a, b) == Thread(b, a).
	Thread(ctx context.Context, userA, userB int64) ([]domain.Message, error)
}
