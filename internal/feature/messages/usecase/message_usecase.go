package usecase

import (
	"context"
	"time"

	"messagely_backend/internal/feature/messages/domain/entity"
)

// MessageRepository abstracts the persistence layer for messages.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, m *entity.Message) error

	// FindByID retrieves a message with both participant summaries populated.
	// Returns ErrMessageNotFound when no such message exists.
	FindByID(ctx context.Context, id uint) (*entity.Message, error)

	// FindSentBy returns messages with from_username = username in insertion
	// order, each with the recipient summary populated.
	FindSentBy(ctx context.Context, username string) ([]entity.Message, error)

	// FindReceivedBy returns messages with to_username = username in
	// insertion order, each with the sender summary populated.
	FindReceivedBy(ctx context.Context, username string) ([]entity.Message, error)

	// MarkRead sets read_at = at on the message, but only when read_at is
	// still null, and returns the stored read_at afterwards. Returns
	// ErrMessageNotFound when no such message exists.
	MarkRead(ctx context.Context, id uint, at time.Time) (*time.Time, error)
}

// UserDirectory answers existence checks against the user store. Recipient
// validation goes through here, never through a cache, so a stale cache can
// never admit a message addressed to a nonexistent user.
type UserDirectory interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// messageUsecase implements message operations together with their
// authorization rules. Every method takes the authenticated caller explicitly;
// nothing is ever trusted from the request body about identity.
type messageUsecase struct {
	messages MessageRepository
	users    UserDirectory
}

// NewMessageUsecase creates a new messageUsecase instance.
func NewMessageUsecase(messages MessageRepository, users UserDirectory) *messageUsecase {
	return &messageUsecase{messages: messages, users: users}
}

// Send creates a message from the authenticated caller to the given
// recipient. The sender is always the caller.
func (u *messageUsecase) Send(ctx context.Context, caller, toUsername, body string) (*entity.Message, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}
	ok, err := u.users.Exists(ctx, toUsername)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownRecipient
	}

	m := &entity.Message{
		FromUsername: caller,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	if err := u.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns a single message with both participants. Only the sender or the
// recipient may read it.
func (u *messageUsecase) Get(ctx context.Context, caller string, id uint) (*entity.Message, error) {
	m, err := u.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsParticipant(caller) {
		return nil, ErrForbidden
	}
	return m, nil
}

// ListFrom returns the messages sent by username. Callers may only list their
// own sent messages.
func (u *messageUsecase) ListFrom(ctx context.Context, caller, username string) ([]entity.Message, error) {
	if caller != username {
		return nil, ErrForbidden
	}
	return u.messages.FindSentBy(ctx, username)
}

// ListTo returns the messages received by username. Callers may only list
// their own received messages.
func (u *messageUsecase) ListTo(ctx context.Context, caller, username string) ([]entity.Message, error) {
	if caller != username {
		return nil, ErrForbidden
	}
	return u.messages.FindReceivedBy(ctx, username)
}

// MarkRead marks a message read on behalf of the caller. Only the recipient
// may do so. Marking an already-read message is idempotent: the stored
// read_at is returned unchanged and no error is raised.
func (u *messageUsecase) MarkRead(ctx context.Context, caller string, id uint) (*time.Time, error) {
	m, err := u.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller != m.ToUsername {
		return nil, ErrForbidden
	}
	if m.ReadAt != nil {
		return m.ReadAt, nil
	}
	// The repository guards the update with read_at IS NULL, so a concurrent
	// mark cannot overwrite an earlier one.
	return u.messages.MarkRead(ctx, id, time.Now().UTC())
}
