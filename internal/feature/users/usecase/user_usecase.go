package usecase

import (
	"context"

	"messagely_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts read access to stored user profiles.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters or the caching decorator).
type UserRepository interface {
	// FindAll returns every profile in insertion order.
	FindAll(ctx context.Context) ([]entity.Profile, error)

	// FindByUsername returns the profile for the given username.
	// Returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*entity.Profile, error)
}

// userUsecase serves the profile read operations. Both operations are open to
// any authenticated caller: profiles contain no sensitive fields.
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase creates a new userUsecase instance.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// List returns all registered profiles.
func (u *userUsecase) List(ctx context.Context) ([]entity.Profile, error) {
	return u.users.FindAll(ctx)
}

// Get returns a single profile by username.
func (u *userUsecase) Get(ctx context.Context, username string) (*entity.Profile, error) {
	return u.users.FindByUsername(ctx, username)
}
