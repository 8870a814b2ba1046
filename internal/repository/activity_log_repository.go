package repository

import (
	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(entry *model.ActivityLog) error
	FindRecent(limit int, action, username string) ([]model.ActivityLog, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(entry *model.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityLogRepository) FindRecent(limit int, action, username string) ([]model.ActivityLog, error) {
	query := r.db.Model(&model.ActivityLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if username != "" {
		query = query.Where("username = ?", username)
	}
	var logs []model.ActivityLog
	err := query.Order("timestamp DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
