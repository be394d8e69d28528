package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatterly/chat-service/internal/core/domain"
	"github.com/chatterly/chat-service/internal/core/ports"
)

// dummyHash is compared against when the username does not exist, so both
// failure paths cost one bcrypt verification and are indistinguishable.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("chatterly-no-such-user"), bcrypt.DefaultCost)

// CredentialService implements registration and password verification.
type CredentialService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewCredentialService(repo ports.UserRepository, logger zerolog.Logger) *CredentialService {
	return &CredentialService{repo: repo, logger: logger}
}

// Register derives a bcrypt verifier from the password and creates the account.
// The raw password is never persisted or logged.
func (s *CredentialService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Authenticate verifies the password against the stored verifier. Unknown
// usernames and wrong passwords both return domain.ErrInvalidCredentials so
// the caller cannot enumerate accounts.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a compare anyway to keep timing uniform.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ListOtherUsers returns every registered user except the given one, in stable
// insertion order.
func (s *CredentialService) ListOtherUsers(ctx context.Context, excludeID int64) ([]domain.User, error) {
	return s.repo.ListExcept(ctx, excludeID)
}
