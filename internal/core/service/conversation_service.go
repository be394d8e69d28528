package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chatterly/chat-service/internal/core/domain"
	"github.com/chatterly/chat-service/internal/core/ports"
)

// ConversationService implements message sending and thread retrieval.
type ConversationService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewConversationService(messages ports.MessageRepository, users ports.UserRepository, logger zerolog.Logger) *ConversationService {
	return &ConversationService{messages: messages, users: users, logger: logger}
}

// Send resolves the receiver by username and persists a new message. The
// sender is re-checked against the store even though the handler layer only
// calls this with an authenticated identity.
func (s *ConversationService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	// Blank-only bodies are rejected, but accepted bodies are stored verbatim.
	if strings.TrimSpace(input.Body) == "" {
		return nil, domain.ErrEmptyMessage
	}

	receiver, err := s.users.FindByUsername(ctx, input.ReceiverUsername)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownRecipient
		}
		return nil, err
	}

	sender, err := s.users.FindByID(ctx, input.SenderID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownSender
		}
		return nil, err
	}

	msg := &domain.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Body:       input.Body,
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		s.logger.Error().Err(err).Int64("sender_id", sender.ID).Msg("failed to persist message")
		return nil, err
	}

	s.logger.Info().
		Int64("message_id", created.ID).
		Int64("sender_id", created.SenderID).
		Int64("receiver_id", created.ReceiverID).
		Msg("message sent")

	return created, nil
}

// Thread returns the full conversation between the two users, oldest first.
// The pair is unordered, so Thread(a, b) and Thread(b, a) are identical.
func (s *ConversationService) Thread(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	return s.messages.Thread(ctx, userA, userB)
}

// ThreadWith resolves the peer by username and returns the conversation
// between the user and that peer.
func (s *ConversationService) ThreadWith(ctx context.Context, userID int64, peerUsername string) (*domain.User, []domain.Message, error) {
	peer, err := s.users.FindByUsername(ctx, peerUsername)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messages.Thread(ctx, userID, peer.ID)
	if err != nil {
		return nil, nil, err
	}
	return peer, msgs, nil
}
