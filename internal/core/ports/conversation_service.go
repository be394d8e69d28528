package ports

import (
	"context"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// SendMessageInput carries everything needed to persist one message.
type SendMessageInput struct {
	SenderID         int64
	ReceiverUsername string
	Body             string
}

// ConversationService owns message persistence and thread retrieval.
type ConversationService interface {
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	Thread(ctx context.Context, userA, userB int64) ([]domain.Message, error)
	// ThreadWith resolves the peer by username and returns the conversation
	// between the user and that peer, oldest first.
	ThreadWith(ctx context.Context, userID int64, peerUsername string) (*domain.User, []domain.Message, error)
}
