package domain

import (
	"errors"
	"time"
)

var ErrEmptyMessage = errors.New("message body is empty")
var ErrUnknownRecipient = errors.New("unknown recipient")
var ErrUnknownSender = errors.New("unknown sender")

// Message is a single chat message between two users. Messages are immutable
// once created; the auto-assigned ID is the sole ordering key within a thread.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
