package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatterly/chat-service/internal/core/domain"
)

type stubUserRepo struct {
	users  []*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
		if user.Email != "" && u.Email == user.Email {
			return nil, domain.ErrDuplicateUsername
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users = append(r.users, cloneUser(created))
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListExcept(_ context.Context, excludeID int64) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.ID != excludeID {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func TestCredentialService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	user, err := svc.Register(context.Background(), "alice", "pw1", "alice@example.com")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCredentialService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "", "pw", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "   ", "pw", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestCredentialService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "bob", "pw", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pw2", ""); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected single record, got %d", len(repo.users))
	}
}

func TestCredentialService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	registered, err := svc.Register(context.Background(), "carol", "s3cret", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}
}

func TestCredentialService_Authenticate_Failure(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	_, _ = svc.Register(context.Background(), "dave", "goodpass", "")

	_, wrongPass := svc.Authenticate(context.Background(), "dave", "badpass")
	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}

	// Unknown username must be indistinguishable from a wrong password.
	_, noUser := svc.Authenticate(context.Background(), "ghost", "badpass")
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", noUser)
	}
	if wrongPass != noUser {
		t.Fatalf("failure modes must return the same error kind: %v vs %v", wrongPass, noUser)
	}
}

func TestCredentialService_ListOtherUsers(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	alice, _ := svc.Register(context.Background(), "alice", "pw", "")
	_, _ = svc.Register(context.Background(), "bob", "pw", "")
	_, _ = svc.Register(context.Background(), "carol", "pw", "")

	others, err := svc.ListOtherUsers(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListOtherUsers failed: %v", err)
	}
	if len(others) != 2 {
		t.Fatalf("expected 2 users, got %d", len(others))
	}
	if others[0].Username != "bob" || others[1].Username != "carol" {
		t.Fatalf("unexpected order: %s, %s", others[0].Username, others[1].Username)
	}
	for _, u := range others {
		if u.Username == "alice" {
			t.Fatalf("list must not include the excluded user")
		}
	}
}
