package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"namogange/app/models/activity"
	"namogange/pkg/database"
)

// ActivityRepository 操作日志仓库
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository 创建仓库实例
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{db: database.DB}
}

// Create 写入日志，TaskID 重复时忽略
func (r *ActivityRepository) Create(ctx context.Context, log *activity.Log) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "task_id"}}, DoNothing: true}).
		Create(log).Error
}

// ListRecent 客户最近的日志
func (r *ActivityRepository) ListRecent(ctx context.Context, clientID string, limit int) ([]activity.Log, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []activity.Log
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
