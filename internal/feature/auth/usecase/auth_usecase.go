package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"messagely_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type UserRepository interface {
	// Create persists a new user to storage.
	// Returns ErrUsernameTaken when the username already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves the user matching the given username.
	// Returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpdateLastLogin sets the user's last_login_at timestamp.
	// Returns ErrUserNotFound when no such user exists.
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
}

// TokenIssuer abstracts signed token creation (provided by platform/jwt).
type TokenIssuer interface {
	GenerateToken(username string) (string, error)
}

// ProfileCache abstracts invalidation of cached profile reads so that writes
// through this usecase do not serve stale data for longer than necessary.
type ProfileCache interface {
	Invalidate(ctx context.Context, usernames ...string)
}

// RegisterParams carries the required registration fields.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// authUsecase implements registration and authentication business logic.
type authUsecase struct {
	users      UserRepository
	tokens     TokenIssuer
	cache      ProfileCache
	bcryptCost int
	dummyHash  []byte
}

// NewAuthUsecase creates a new authUsecase instance. cache may be nil when no
// profile cache is wired.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, cache ProfileCache, bcryptCost int) *authUsecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// The dummy hash must use the same cost as real hashes so that
	// unknown-user comparisons take as long as wrong-password ones.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt dummy hash: %v", err))
	}
	return &authUsecase{
		users:      users,
		tokens:     tokens,
		cache:      cache,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
	}
}

// Register creates a new user with a hashed password.
// All five fields are required; join_at and last_login_at are both set to the
// creation instant. The returned entity includes the hash: transport layers
// must never render it outward.
func (u *authUsecase) Register(ctx context.Context, p RegisterParams) (*entity.User, error) {
	if p.Username == "" || p.Password == "" || p.FirstName == "" || p.LastName == "" || p.Phone == "" {
		return nil, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Username:    p.Username,
		Password:    string(hashed),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Phone:       p.Phone,
		JoinAt:      now,
		LastLoginAt: now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	u.invalidate(ctx, p.Username)
	return user, nil
}

// Authenticate reports whether the username/password pair is valid.
// To mitigate timing attacks, a bcrypt comparison runs even when the username
// is unknown. A non-nil error means the store could not answer; it is never
// returned for a wrong password or unknown user.
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	// Dummy hash guarantees bcrypt.CompareHashAndPassword always runs.
	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = []byte(user.Password)
	}

	compareErr := bcrypt.CompareHashAndPassword(passwordHash, []byte(password))

	return err == nil && compareErr == nil, nil
}

// Login authenticates the user and, on success, refreshes last_login_at and
// issues a signed token asserting the username. Unknown users and wrong
// passwords both yield ErrInvalidCredentials; store faults propagate as-is so
// the transport layer renders a server error instead of a credential failure.
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := u.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	if err := u.users.UpdateLastLogin(ctx, username, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to update login timestamp: %w", err)
	}
	u.invalidate(ctx, username)

	token, err := u.tokens.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// invalidate drops cached profile reads touched by a write. Best effort.
func (u *authUsecase) invalidate(ctx context.Context, username string) {
	if u.cache == nil {
		return
	}
	u.cache.Invalidate(ctx, username)
	slog.Debug("profile cache invalidated", "username", username)
}
