// Package repository declares the persistence contracts the services depend on.
// Every owned document is addressed by (userID, id); a record owned by someone
// else is reported as ErrNotFound.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sahilchouksey/studyflow/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// TaskFilter narrows task listings. An empty UserID matches every user.
type TaskFilter struct {
	UserID    string
	Completed *bool
	Priority  model.Priority
	Type      model.TaskType
}

// EventFilter narrows event listings. Zero times leave that side open.
type EventFilter struct {
	UserID string
	From   time.Time
	To     time.Time
}

type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Get(ctx context.Context, userID, id string) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error

	// DueForReminder returns unfinished tasks without a sent reminder whose due
	// date lies in [from, to]. An empty userID scans all users.
	DueForReminder(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error)
	MarkReminded(ctx context.Context, ids []string, at time.Time) error
}

type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]model.Event, error)
	Count(ctx context.Context, filter EventFilter) (int64, error)
	Get(ctx context.Context, userID, id string) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error

	// DueForReminder returns reminder-enabled events without a sent reminder
	// whose instant lies in [from, to]. An empty userID scans all users.
	DueForReminder(ctx context.Context, userID string, from, to time.Time) ([]model.Event, error)
	MarkReminded(ctx context.Context, ids []string, at time.Time) error
}

type SubjectRepository interface {
	List(ctx context.Context, userID string) ([]model.Subject, error)
	Get(ctx context.Context, userID, id string) (*model.Subject, error)
	Create(ctx context.Context, subject *model.Subject) error
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	ColorTaken(ctx context.Context, userID, color, excludeID string) (bool, error)
}

type ModuleRepository interface {
	// List returns modules with their topics; an empty subjectID lists all of the user's modules
	List(ctx context.Context, userID, subjectID string) ([]model.Module, error)
	Get(ctx context.Context, userID, id string) (*model.Module, error)
	Create(ctx context.Context, module *model.Module) error
	// Update replaces the module fields and its full topic list
	Update(ctx context.Context, module *model.Module) error
	Delete(ctx context.Context, userID, id string) error
	DeleteBySubject(ctx context.Context, userID, subjectID string) error
	DeleteByUser(ctx context.Context, userID string) error
	// CountBySubject tallies modules per subject for one user
	CountBySubject(ctx context.Context, userID string) (map[string]model.ModuleCounts, error)
}

type ClassSlotRepository interface {
	// List returns slots ordered by day and start time; an empty day lists the whole week
	List(ctx context.Context, userID, day string) ([]model.ClassSlot, error)
	Get(ctx context.Context, userID, id string) (*model.ClassSlot, error)
	Create(ctx context.Context, slot *model.ClassSlot) error
	Update(ctx context.Context, slot *model.ClassSlot) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// UserListOptions pages and filters the user listing
type UserListOptions struct {
	Search string
	Role   string
	Offset int
	Limit  int
}

type UserRepository interface {
	List(ctx context.Context, opts UserListOptions) ([]model.User, int64, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetMany loads users by id; unknown ids are absent from the result
	GetMany(ctx context.Context, ids []string) (map[string]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type JobLogRepository interface {
	Create(ctx context.Context, entry *model.CronJobLog) error
	Update(ctx context.Context, entry *model.CronJobLog) error
	Recent(ctx context.Context, jobName string, limit int) ([]model.CronJobLog, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AdminAuditLog) error
	Recent(ctx context.Context, limit int) ([]model.AdminAuditLog, error)
}

// Repositories bundles every repository of one storage backend
type Repositories struct {
	Tasks     TaskRepository
	Events    EventRepository
	Subjects  SubjectRepository
	Modules   ModuleRepository
	Slots     ClassSlotRepository
	Users     UserRepository
	JobLogs   JobLogRepository
	AuditLogs AuditLogRepository
}
