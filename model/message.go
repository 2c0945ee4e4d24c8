package model

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Message is one turn in a consultation conversation. Rows are written in
// user/assistant pairs, never updated and never deleted here.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(64);index:idx_konsultasi_user_created,priority:1" json:"user_id"`
	Role      string    `gorm:"type:varchar(16)" json:"role"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_konsultasi_user_created,priority:2" json:"created_at"`
}

func (Message) TableName() string { return "konsultasi" }

type ConsultationRepo struct {
	db *gorm.DB
}

func NewConsultationRepo(db *gorm.DB) *ConsultationRepo {
	return &ConsultationRepo{db: db}
}

// Append writes the whole batch in one transaction. A half pair is never left
// behind: either every message becomes visible or none does.
func (r *ConsultationRepo) Append(ctx context.Context, messages []Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range messages {
			if err := tx.Create(&messages[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// QueryByUser returns the transcript oldest first.
func (r *ConsultationRepo) QueryByUser(ctx context.Context, userID string) ([]Message, error) {
	var msgs []Message
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *ConsultationRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *ConsultationRepo) CountUsersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
