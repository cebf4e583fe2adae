// Package gormrepo implements the repository contracts on top of GORM.
// The same code serves the Postgres and SQLite drivers.
package gormrepo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// New builds every repository over one GORM handle
func New(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Tasks:     NewTaskRepository(db),
		Events:    NewEventRepository(db),
		Subjects:  NewSubjectRepository(db),
		Modules:   NewModuleRepository(db),
		Slots:     NewClassSlotRepository(db),
		Users:     NewUserRepository(db),
		JobLogs:   NewJobLogRepository(db),
		AuditLogs: NewAuditLogRepository(db),
	}
}

// Models lists every table managed by this package, in migration order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Task{},
		&model.Event{},
		&model.Subject{},
		&model.Module{},
		&model.Topic{},
		&model.ClassSlot{},
		&model.CronJobLog{},
		&model.AdminAuditLog{},
	}
}

// translate maps GORM errors onto the repository sentinels
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// deleteOwned removes one owned row and reports ErrNotFound when nothing matched
func deleteOwned(db *gorm.DB, value interface{}, userID, id, op string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(value)
	if result.Error != nil {
		return translate(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
