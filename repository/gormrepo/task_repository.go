package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) filtered(ctx context.Context, filter repository.TaskFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	return query
}

// List returns tasks ordered by due date with undated tasks last
func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.filtered(ctx, filter).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, translate("count tasks", err)
	}
	return count, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, translate("get task", err)
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = model.NewID()
	}
	return translate("create task", r.db.WithContext(ctx).Create(task).Error)
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return translate("update task", r.db.WithContext(ctx).Save(task).Error)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(r.db.WithContext(ctx), &model.Task{}, userID, id, "delete task")
}

func (r *TaskRepository) DeleteByUser(ctx context.Context, userID string) error {
	return translate("delete user tasks", r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Task{}).Error)
}

func (r *TaskRepository) DueForReminder(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	tasks := []model.Task{}
	query := r.db.WithContext(ctx).
		Where("completed = ?", false).
		Where("(reminder_sent = ? OR reminder_sent IS NULL)", false).
		Where("due_date >= ? AND due_date <= ?", from.UTC(), to.UTC())
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Order("user_id ASC").Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, translate("find due tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"reminder_sent":    true,
			"reminder_sent_at": at.UTC(),
		}).Error
	return translate("mark tasks reminded", err)
}
