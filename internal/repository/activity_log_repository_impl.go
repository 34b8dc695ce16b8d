package repository

import (
	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type activityLogRepository struct {
	col *Collection[entity.ActivityLog, *entity.ActivityLog]
}

func NewActivityLogRepository() domainRepo.ActivityLogRepository {
	return &activityLogRepository{col: NewCollection[entity.ActivityLog, *entity.ActivityLog](entity.CollectionLogs, "timestamp")}
}

func (r *activityLogRepository) Create(db *gorm.DB, log *entity.ActivityLog) error {
	_, err := r.col.Add(db, log)
	return err
}

func (r *activityLogRepository) FindRecent(db *gorm.DB, limit int) ([]entity.ActivityLog, error) {
	return r.col.Scan(db, ScanOptions[entity.ActivityLog]{Reverse: true, Limit: limit})
}

func (r *activityLogRepository) Count(db *gorm.DB) (int64, error) {
	return r.col.Count(db)
}
