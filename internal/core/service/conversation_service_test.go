package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chatterly/chat-service/internal/core/domain"
	"github.com/chatterly/chat-service/internal/core/ports"
)

type stubMessageRepo struct {
	msgs   []domain.Message
	nextID int64
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{}
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.nextID++
	created := *msg
	created.ID = r.nextID
	r.msgs = append(r.msgs, created)
	return &created, nil
}

func (r *stubMessageRepo) Thread(_ context.Context, userA, userB int64) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.msgs {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func seedUsers(t *testing.T, repo *stubUserRepo, usernames ...string) []*domain.User {
	t.Helper()
	users := make([]*domain.User, 0, len(usernames))
	for _, name := range usernames {
		u, err := repo.Create(context.Background(), &domain.User{Username: name, PasswordHash: "x"})
		if err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
		users = append(users, u)
	}
	return users
}

func TestConversationService_Send_Success(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seeded := seedUsers(t, users, "alice", "bob")

	msg, err := svc.Send(context.Background(), ports.SendMessageInput{
		SenderID:         seeded[0].ID,
		ReceiverUsername: "bob",
		Body:             "hi",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if msg.SenderID != seeded[0].ID || msg.ReceiverID != seeded[1].ID {
		t.Fatalf("unexpected participants: %d -> %d", msg.SenderID, msg.ReceiverID)
	}
	if msg.Body != "hi" {
		t.Fatalf("unexpected body: %q", msg.Body)
	}
}

func TestConversationService_Send_BodyStoredVerbatim(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seeded := seedUsers(t, users, "alice", "bob")

	msg, err := svc.Send(context.Background(), ports.SendMessageInput{
		SenderID:         seeded[0].ID,
		ReceiverUsername: "bob",
		Body:             "  spaced out  ",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.Body != "  spaced out  " {
		t.Fatalf("body must be stored verbatim, got %q", msg.Body)
	}
}

func TestConversationService_Send_EmptyBody(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seeded := seedUsers(t, users, "alice", "bob")

	for _, body := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Send(context.Background(), ports.SendMessageInput{
			SenderID:         seeded[0].ID,
			ReceiverUsername: "bob",
			Body:             body,
		}); !errors.Is(err, domain.ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage for %q, got %v", body, err)
		}
	}

	if len(msgs.msgs) != 0 {
		t.Fatalf("rejected sends must not create records, store has %d", len(msgs.msgs))
	}
}

func TestConversationService_Send_UnknownRecipient(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seeded := seedUsers(t, users, "alice")

	if _, err := svc.Send(context.Background(), ports.SendMessageInput{
		SenderID:         seeded[0].ID,
		ReceiverUsername: "ghost",
		Body:             "hello?",
	}); !errors.Is(err, domain.ErrUnknownRecipient) {
		t.Fatalf("expected ErrUnknownRecipient, got %v", err)
	}
}

func TestConversationService_Send_UnknownSender(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seedUsers(t, users, "bob")

	if _, err := svc.Send(context.Background(), ports.SendMessageInput{
		SenderID:         999,
		ReceiverUsername: "bob",
		Body:             "hi",
	}); !errors.Is(err, domain.ErrUnknownSender) {
		t.Fatalf("expected ErrUnknownSender, got %v", err)
	}
}

func TestConversationService_Thread_OrderAndSymmetry(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seeded := seedUsers(t, users, "alice", "bob", "carol")
	alice, bob, carol := seeded[0], seeded[1], seeded[2]

	// Alternate senders; also interleave traffic with a third user that must
	// never appear in the alice/bob thread.
	const n = 6
	for i := 0; i < n; i++ {
		sender, receiver := alice, bob
		if i%2 == 1 {
			sender, receiver = bob, alice
		}
		if _, err := svc.Send(context.Background(), ports.SendMessageInput{
			SenderID:         sender.ID,
			ReceiverUsername: receiver.Username,
			Body:             fmt.Sprintf("msg-%d", i),
		}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
		if _, err := svc.Send(context.Background(), ports.SendMessageInput{
			SenderID:         alice.ID,
			ReceiverUsername: carol.Username,
			Body:             "noise",
		}); err != nil {
			t.Fatalf("noise send %d: %v", i, err)
		}
	}

	thread, err := svc.Thread(context.Background(), alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Thread returned error: %v", err)
	}
	if len(thread) != n {
		t.Fatalf("expected %d messages, got %d", n, len(thread))
	}
	for i, m := range thread {
		if m.Body != fmt.Sprintf("msg-%d", i) {
			t.Fatalf("message %d out of order: %q", i, m.Body)
		}
		if i > 0 && thread[i-1].ID >= m.ID {
			t.Fatalf("ids must ascend: %d then %d", thread[i-1].ID, m.ID)
		}
	}

	reversed, err := svc.Thread(context.Background(), bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("reverse Thread returned error: %v", err)
	}
	if len(reversed) != len(thread) {
		t.Fatalf("thread must be symmetric: %d vs %d", len(thread), len(reversed))
	}
	for i := range thread {
		if thread[i].ID != reversed[i].ID {
			t.Fatalf("symmetric threads diverge at %d: %d vs %d", i, thread[i].ID, reversed[i].ID)
		}
	}
}

func TestConversationService_ThreadWith(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	svc := NewConversationService(msgs, users, zerolog.Nop())

	seeded := seedUsers(t, users, "alice", "bob")

	if _, err := svc.Send(context.Background(), ports.SendMessageInput{
		SenderID:         seeded[0].ID,
		ReceiverUsername: "bob",
		Body:             "hi",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	peer, thread, err := svc.ThreadWith(context.Background(), seeded[0].ID, "bob")
	if err != nil {
		t.Fatalf("ThreadWith returned error: %v", err)
	}
	if peer.Username != "bob" {
		t.Fatalf("unexpected peer: %s", peer.Username)
	}
	if len(thread) != 1 || thread[0].Body != "hi" {
		t.Fatalf("unexpected thread: %+v", thread)
	}

	if _, _, err := svc.ThreadWith(context.Background(), seeded[0].ID, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChat_EndToEnd(t *testing.T) {
	users := newStubUserRepo()
	msgs := newStubMessageRepo()
	credentials := NewCredentialService(users, zerolog.Nop())
	conversations := NewConversationService(msgs, users, zerolog.Nop())

	alice, err := credentials.Register(context.Background(), "alice", "pw1", "")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	bob, err := credentials.Register(context.Background(), "bob", "pw2", "")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	loggedIn, err := credentials.Authenticate(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login alice: %v", err)
	}

	if _, err := conversations.Send(context.Background(), ports.SendMessageInput{
		SenderID:         loggedIn.ID,
		ReceiverUsername: "bob",
		Body:             "hi",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, err := credentials.Authenticate(context.Background(), "bob", "pw2"); err != nil {
		t.Fatalf("login bob: %v", err)
	}

	thread, err := conversations.Thread(context.Background(), bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(thread) != 1 {
		t.Fatalf("expected 1 message, got %d", len(thread))
	}
	if thread[0].Body != "hi" || thread[0].SenderID != alice.ID {
		t.Fatalf("unexpected message: %+v", thread[0])
	}
}
