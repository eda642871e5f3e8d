// Package adapters provides the repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"messagely_backend/internal/feature/users/domain/entity"
	"messagely_backend/internal/feature/users/usecase"
)

// userReaderMySQL reads user profiles through GORM. It never selects the
// password column, so credential material cannot leak through this path.
type userReaderMySQL struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userReaderMySQL)(nil)

// NewUserReader creates a new userReaderMySQL instance with the given gorm.DB
// connection.
func NewUserReader(db *gorm.DB) *userReaderMySQL {
	return &userReaderMySQL{db: db}
}

// profileRow is the adapter-local projection of the users table.
type profileRow struct {
	Username    string
	FirstName   string
	LastName    string
	Phone       string
	JoinAt      time.Time
	LastLoginAt time.Time
}

const profileColumns = "username, first_name, last_name, phone, join_at, last_login_at"

// FindAll returns every profile ordered by insertion (surrogate id).
func (r *userReaderMySQL) FindAll(ctx context.Context) ([]entity.Profile, error) {
	var rows []profileRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(profileColumns).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]entity.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, toProfile(row))
	}
	return profiles, nil
}

// FindByUsername returns a single profile.
// Returns usecase.ErrUserNotFound when no such user exists.
func (r *userReaderMySQL) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	var row profileRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(profileColumns).
		Where("username = ?", username).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}

	p := toProfile(row)
	return &p, nil
}

func toProfile(row profileRow) entity.Profile {
	return entity.Profile{
		Username:    row.Username,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Phone:       row.Phone,
		JoinAt:      row.JoinAt,
		LastLoginAt: row.LastLoginAt,
	}
}
