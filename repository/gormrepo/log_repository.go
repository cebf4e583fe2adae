package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahilchouksey/studyflow/model"
)

// JobLogRepository records background job executions.
type JobLogRepository struct {
	db *gorm.DB
}

func NewJobLogRepository(db *gorm.DB) *JobLogRepository {
	return &JobLogRepository{db: db}
}

func (r *JobLogRepository) Create(ctx context.Context, entry *model.CronJobLog) error {
	if entry.ID == "" {
		entry.ID = model.NewID()
	}
	return translate("create job log", r.db.WithContext(ctx).Create(entry).Error)
}

func (r *JobLogRepository) Update(ctx context.Context, entry *model.CronJobLog) error {
	return translate("update job log", r.db.WithContext(ctx).Save(entry).Error)
}

// Recent returns the newest entries first; an empty jobName covers every job
func (r *JobLogRepository) Recent(ctx context.Context, jobName string, limit int) ([]model.CronJobLog, error) {
	logs := []model.CronJobLog{}
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if jobName != "" {
		query = query.Where("job_name = ?", jobName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, translate("list job logs", err)
	}
	return logs, nil
}

func (r *JobLogRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("started_at < ?", before.UTC()).Delete(&model.CronJobLog{})
	if result.Error != nil {
		return 0, translate("prune job logs", result.Error)
	}
	return result.RowsAffected, nil
}

// AuditLogRepository stores the admin audit trail.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *model.AdminAuditLog) error {
	if entry.ID == "" {
		entry.ID = model.NewID()
	}
	return translate("create audit log", r.db.WithContext(ctx).Create(entry).Error)
}

func (r *AuditLogRepository) Recent(ctx context.Context, limit int) ([]model.AdminAuditLog, error) {
	logs := []model.AdminAuditLog{}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, translate("list audit logs", err)
	}
	return logs, nil
}
