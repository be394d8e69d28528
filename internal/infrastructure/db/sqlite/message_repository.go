package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// MessageRepository persists chat messages in the messages table.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	m := &messageModel{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Body:       msg.Body,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	created := toDomainMessage(m)
	return &created, nil
}

func (r *MessageRepository) Thread(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	var rows []messageModel
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}

	msgs := make([]domain.Message, 0, len(rows))
	for i := range rows {
		msgs = append(msgs, toDomainMessage(&rows[i]))
	}
	return msgs, nil
}
