package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusSkipped   = "skipped"
)

// CronJobLog represents one execution of a background job
type CronJobLog struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	JobName     string         `gorm:"type:varchar(100);not null;index" bson:"job_name" json:"job_name"`
	Status      string         `gorm:"type:varchar(20);not null" bson:"status" json:"status"`
	StartedAt   time.Time      `gorm:"not null;index" bson:"started_at" json:"started_at"`
	CompletedAt *time.Time     `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Duration    int64          `bson:"duration_ms" json:"duration_ms"`
	Message     string         `gorm:"type:text" bson:"message,omitempty" json:"message,omitempty"`
	ErrorMsg    string         `gorm:"type:text" bson:"error_msg,omitempty" json:"error_msg,omitempty"`
	Metadata    datatypes.JSON `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}

// TableName specifies the table name for CronJobLog
func (CronJobLog) TableName() string {
	return "cron_job_logs"
}

// Finish closes the log entry with a final status
func (l *CronJobLog) Finish(status string, at time.Time) {
	l.Status = status
	l.CompletedAt = timePtr(at)
	l.Duration = at.Sub(l.StartedAt).Milliseconds()
}
