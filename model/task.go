package model

import "time"

// TaskType classifies the kind of work a task represents
type TaskType string

const (
	TaskTypeHomework   TaskType = "Homework"
	TaskTypeAssignment TaskType = "Assignment"
	TaskTypeProject    TaskType = "Project"
	TaskTypeReading    TaskType = "Reading"
	TaskTypeOther      TaskType = "Other"
)

// TaskTypes lists task types in display order
var TaskTypes = []TaskType{TaskTypeHomework, TaskTypeAssignment, TaskTypeProject, TaskTypeReading, TaskTypeOther}

// Task is a user-owned to-do item
type Task struct {
	ID             string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID         string     `gorm:"type:varchar(36);not null;index:idx_tasks_user_due" bson:"user_id" json:"user_id"`
	Title          string     `gorm:"type:varchar(255);not null" bson:"title" json:"title"`
	Description    string     `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	Subject        string     `gorm:"type:varchar(255)" bson:"subject,omitempty" json:"subject,omitempty"`
	DueDate        *time.Time `gorm:"index:idx_tasks_user_due;index:idx_tasks_reminder" bson:"due_date,omitempty" json:"due_date,omitempty"`
	Priority       Priority   `gorm:"type:varchar(10);not null;default:'Medium'" bson:"priority" json:"priority"`
	Type           TaskType   `gorm:"type:varchar(20);not null;default:'Other'" bson:"type" json:"type"`
	Completed      bool       `gorm:"not null;default:false" bson:"completed" json:"completed"`
	CompletedAt    *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	ReminderSent   bool       `gorm:"not null;default:false;index:idx_tasks_reminder" bson:"reminder_sent" json:"reminder_sent"`
	ReminderSentAt *time.Time `bson:"reminder_sent_at,omitempty" json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// SetCompleted applies a completion change and keeps CompletedAt in step with it.
// CompletedAt is stamped only on a false to true transition and cleared on true to false.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	if completed && !t.Completed {
		t.CompletedAt = timePtr(now)
	}
	if !completed {
		t.CompletedAt = nil
	}
	t.Completed = completed
}
