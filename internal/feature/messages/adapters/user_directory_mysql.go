package adapters

import (
	"context"

	"gorm.io/gorm"

	"messagely_backend/internal/feature/messages/usecase"
)

// userDirectoryMySQL answers user-existence checks straight from the users
// table. It deliberately bypasses any caching layer: recipient validation
// must see the current state of the store.
type userDirectoryMySQL struct {
	db *gorm.DB
}

var _ usecase.UserDirectory = (*userDirectoryMySQL)(nil)

// NewUserDirectory creates a new userDirectoryMySQL instance.
func NewUserDirectory(db *gorm.DB) *userDirectoryMySQL {
	return &userDirectoryMySQL{db: db}
}

// Exists reports whether a user with the given username is registered.
func (r *userDirectoryMySQL) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
