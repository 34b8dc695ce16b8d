package repository

import (
	"hospital-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(db *gorm.DB, log *entity.ActivityLog) error
	// FindRecent returns entries newest first; limit <= 0 means all.
	FindRecent(db *gorm.DB, limit int) ([]entity.ActivityLog, error)
	Count(db *gorm.DB) (int64, error)
}
