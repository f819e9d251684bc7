package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type UploadStatus string

const (
	UploadStatusSuccess UploadStatus = "success"
	UploadStatusPartial UploadStatus = "partial"
)

// UploadHistory is the append-only audit record: exactly one row per
// committed ingestion run, never mutated afterwards.
type UploadHistory struct {
	ID         int          `gorm:"primary_key" json:"id"`
	FileName   string       `gorm:"size:255;not null" json:"file_name"`
	RowCount   int          `gorm:"not null;default:0" json:"row_count"`
	Status     UploadStatus `gorm:"type:enum('success','partial');default:'success'" json:"status"`
	Errors     *string      `gorm:"type:text" json:"errors,omitempty"`
	UserId     int          `gorm:"index;not null" json:"user_id"`
	User       User         `gorm:"foreignKey:UserId" json:"user"`
	UploadedAt time.Time    `gorm:"autoCreateTime" json:"uploaded_at"`
}

const UploadHistoryPageSize = 10

type UploadHistoryPage struct {
	Data       []UploadHistory `json:"data"`
	Page       int             `json:"page"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}

// ListUploadHistories returns one fixed-size page of audit records, newest
// first, with the uploading user attached.
func ListUploadHistories(ctx context.Context, db *gorm.DB, page int) (*UploadHistoryPage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := db.WithContext(ctx).Model(&UploadHistory{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []UploadHistory
	err := db.WithContext(ctx).
		Preload("User").
		Order("uploaded_at desc, id desc").
		Offset((page - 1) * UploadHistoryPageSize).
		Limit(UploadHistoryPageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &UploadHistoryPage{
		Data:       rows,
		Page:       page,
		Total:      total,
		TotalPages: int((total + UploadHistoryPageSize - 1) / UploadHistoryPageSize),
	}, nil
}
