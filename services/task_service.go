package services

import (
	"context"
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// TaskService manages a user's tasks
type TaskService struct {
	clock
	tasks repository.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(tasks repository.TaskRepository, loc *time.Location) *TaskService {
	return &TaskService{
		clock: newClock(loc),
		tasks: tasks,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Subject     string `json:"subject" validate:"max=255"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Type        string `json:"type" validate:"omitempty,oneof=Homework Assignment Project Reading Other"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskRequest carries a partial task update; nil fields are left alone.
// An empty due_date clears the due date.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=5000"`
	Subject     *string `json:"subject" validate:"omitnil,max=255"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=High Medium Low"`
	Type        *string `json:"type" validate:"omitnil,oneof=Homework Assignment Project Reading Other"`
	Completed   *bool   `json:"completed"`
}

// TaskQuery filters a task listing
type TaskQuery struct {
	Completed *bool
	Priority  string
	Type      string
}

// List returns the user's tasks, earliest due first and undated last
func (s *TaskService) List(ctx context.Context, userID string, query TaskQuery) ([]model.Task, error) {
	return s.tasks.List(ctx, repository.TaskFilter{
		UserID:    userID,
		Completed: query.Completed,
		Priority:  model.Priority(query.Priority),
		Type:      model.TaskType(query.Type),
	})
}

// Get returns one of the user's tasks
func (s *TaskService) Get(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.tasks.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound("task", err)
	}
	return task, nil
}

// Create stores a new task. completedAt is stamped when it starts completed.
func (s *TaskService) Create(ctx context.Context, userID string, req CreateTaskRequest) (*model.Task, error) {
	dueDate, err := s.parseOptionalInstant("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Subject:     strings.TrimSpace(req.Subject),
		DueDate:     dueDate,
		Priority:    model.PriorityMedium,
		Type:        model.TaskTypeOther,
	}
	if task.Title == "" {
		return nil, invalid("title is required")
	}
	if req.Priority != "" {
		task.Priority = model.Priority(req.Priority)
	}
	if req.Type != "" {
		task.Type = model.TaskType(req.Type)
	}
	task.SetCompleted(req.Completed, s.now())

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update. Moving the due date re-arms the reminder.
func (s *TaskService) Update(ctx context.Context, userID, id string, req UpdateTaskRequest) (*model.Task, error) {
	task, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalid("title cannot be empty")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Subject != nil {
		task.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.DueDate != nil {
		dueDate, err := s.parseOptionalInstant("due_date", *req.DueDate)
		if err != nil {
			return nil, err
		}
		if !sameInstant(task.DueDate, dueDate) {
			task.ReminderSent = false
			task.ReminderSentAt = nil
		}
		task.DueDate = dueDate
	}
	if req.Priority != nil {
		task.Priority = model.Priority(*req.Priority)
	}
	if req.Type != nil {
		task.Type = model.TaskType(*req.Type)
	}
	if req.Completed != nil {
		task.SetCompleted(*req.Completed, s.now())
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, notFound("task", err)
	}
	return task, nil
}

// Delete removes one of the user's tasks
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return notFound("task", err)
	}
	return nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
