package domain

import (
	"errors"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrDuplicateUsername = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUnauthenticated = errors.New("authentication required")

// User models a registered account. The password is never stored; only the
// bcrypt verifier derived from it at registration time.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated principal bound to a request by a valid
// session token.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
