package sqlite

import (
	"time"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// userModel maps the users table. Email is a pointer so absent addresses are
// stored as NULL and skip the unique index.
type userModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Username     string  `gorm:"uniqueIndex;not null"`
	Email        *string `gorm:"uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

// messageModel maps the messages table. The autoincrement ID is the ordering
// key for threads.
type messageModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	SenderID   int64  `gorm:"not null;index"`
	ReceiverID int64  `gorm:"not null;index"`
	Body       string `gorm:"not null"`
	CreatedAt  time.Time
}

func (messageModel) TableName() string { return "messages" }

func toUserModel(u *domain.User) *userModel {
	m := &userModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if u.Email != "" {
		email := u.Email
		m.Email = &email
	}
	return m
}

func toDomainUser(m *userModel) *domain.User {
	u := &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

func toDomainMessage(m *messageModel) domain.Message {
	return domain.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}
