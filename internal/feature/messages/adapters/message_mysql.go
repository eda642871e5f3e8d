// Package adapters provides the repository implementations for the messages feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"messagely_backend/internal/feature/messages/domain/entity"
	"messagely_backend/internal/feature/messages/usecase"
)

// messageMySQL is the GORM-backed implementation of MessageRepository.
type messageMySQL struct {
	db *gorm.DB
}

var _ usecase.MessageRepository = (*messageMySQL)(nil)

// NewMessageMySQL creates a new messageMySQL instance with the given gorm.DB
// connection.
func NewMessageMySQL(db *gorm.DB) *messageMySQL {
	return &messageMySQL{db: db}
}

// MessageModel is the storage model for the messages table. Exported so the
// migration layer can include it in AutoMigrate.
type MessageModel struct {
	ID           uint       `gorm:"primaryKey"`
	FromUsername string     `gorm:"index;size:64;not null"`
	ToUsername   string     `gorm:"index;size:64;not null"`
	Body         string     `gorm:"type:text;not null"`
	SentAt       time.Time  `gorm:"not null"`
	ReadAt       *time.Time
}

// TableName pins the table name regardless of GORM pluralization rules.
func (MessageModel) TableName() string {
	return "messages"
}

// participantRow is the adapter-local projection of the users table.
type participantRow struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

func toEntity(m MessageModel) entity.Message {
	return entity.Message{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       m.ReadAt,
	}
}

func toParticipant(row participantRow) *entity.Participant {
	return &entity.Participant{
		Username:  row.Username,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Phone:     row.Phone,
	}
}

// Create persists a new message and backfills the generated id.
func (r *messageMySQL) Create(ctx context.Context, m *entity.Message) error {
	model := MessageModel{
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       m.ReadAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	m.ID = model.ID
	return nil
}

// FindByID retrieves a message with both participant summaries populated.
func (r *messageMySQL) FindByID(ctx context.Context, id uint) (*entity.Message, error) {
	var model MessageModel
	if err := r.db.WithContext(ctx).Take(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMessageNotFound
		}
		return nil, err
	}

	participants, err := r.loadParticipants(ctx, []string{model.FromUsername, model.ToUsername})
	if err != nil {
		return nil, err
	}

	m := toEntity(model)
	m.FromUser = participants[model.FromUsername]
	m.ToUser = participants[model.ToUsername]
	return &m, nil
}

// FindSentBy returns messages sent by username in insertion order, each with
// the recipient summary populated.
func (r *messageMySQL) FindSentBy(ctx context.Context, username string) ([]entity.Message, error) {
	return r.findDirectional(ctx, "from_username", username)
}

// FindReceivedBy returns messages received by username in insertion order,
// each with the sender summary populated. The filter is on to_username: the
// received listing keys on the recipient column, never the sender.
func (r *messageMySQL) FindReceivedBy(ctx context.Context, username string) ([]entity.Message, error) {
	return r.findDirectional(ctx, "to_username", username)
}

// findDirectional lists messages filtered by one endpoint column and embeds
// the counterpart participant in each result.
func (r *messageMySQL) findDirectional(ctx context.Context, column, username string) ([]entity.Message, error) {
	var models []MessageModel
	err := r.db.WithContext(ctx).
		Where(column+" = ?", username).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	counterparts := make([]string, 0, len(models))
	for _, model := range models {
		if column == "from_username" {
			counterparts = append(counterparts, model.ToUsername)
		} else {
			counterparts = append(counterparts, model.FromUsername)
		}
	}
	participants, err := r.loadParticipants(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Message, 0, len(models))
	for _, model := range models {
		m := toEntity(model)
		if column == "from_username" {
			m.ToUser = participants[model.ToUsername]
		} else {
			m.FromUser = participants[model.FromUsername]
		}
		out = append(out, m)
	}
	return out, nil
}

// MarkRead sets read_at only when it is still null, then returns the stored
// value. The IS NULL guard makes concurrent marks safe: the first writer
// wins and later calls observe its timestamp.
func (r *messageMySQL) MarkRead(ctx context.Context, id uint, at time.Time) (*time.Time, error) {
	res := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at)
	if res.Error != nil {
		return nil, res.Error
	}

	var model MessageModel
	if err := r.db.WithContext(ctx).Select("id, read_at").Take(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMessageNotFound
		}
		return nil, err
	}
	return model.ReadAt, nil
}

// loadParticipants fetches profile summaries for the given usernames in one
// query, keyed by username.
func (r *messageMySQL) loadParticipants(ctx context.Context, usernames []string) (map[string]*entity.Participant, error) {
	out := make(map[string]*entity.Participant, len(usernames))
	if len(usernames) == 0 {
		return out, nil
	}

	var rows []participantRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("username, first_name, last_name, phone").
		Where("username IN ?", usernames).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Username] = toParticipant(row)
	}
	return out, nil
}
