package model

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	ScanStatusPending = "pending"
)

// ScanRecord keeps the upload metadata for the image scan feature. The
// analysis itself is not implemented yet, so records stay pending.
type ScanRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(64);index" json:"user_id"`
	FileName  string    `gorm:"type:varchar(255)" json:"file_name"`
	ImagePath string    `gorm:"type:text" json:"image_path"`
	Status    string    `gorm:"type:varchar(32)" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (ScanRecord) TableName() string { return "scan_records" }

type ScanRepo struct {
	db *gorm.DB
}

func NewScanRepo(db *gorm.DB) *ScanRepo {
	return &ScanRepo{db: db}
}

func (r *ScanRepo) Create(ctx context.Context, rec *ScanRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ScanRepo) ListByUser(ctx context.Context, userID string) ([]ScanRecord, error) {
	var recs []ScanRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *ScanRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ScanRecord{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
