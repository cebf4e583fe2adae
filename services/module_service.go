package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// ModuleService manages study modules and the topics inside them
type ModuleService struct {
	clock
	modules  repository.ModuleRepository
	subjects repository.SubjectRepository
}

// NewModuleService creates a new module service
func NewModuleService(modules repository.ModuleRepository, subjects repository.SubjectRepository, loc *time.Location) *ModuleService {
	return &ModuleService{
		clock:    newClock(loc),
		modules:  modules,
		subjects: subjects,
	}
}

// TopicRequest describes a topic inside a module request
type TopicRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Priority  string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
}

// UpdateTopicRequest carries a partial topic update. An empty due_date clears it.
type UpdateTopicRequest struct {
	Title     *string `json:"title" validate:"omitnil,min=1,max=255"`
	Priority  *string `json:"priority" validate:"omitnil,oneof=High Medium Low"`
	DueDate   *string `json:"due_date"`
	Completed *bool   `json:"completed"`
}

// CreateModuleRequest represents the request to create a module
type CreateModuleRequest struct {
	SubjectID      string         `json:"subject_id" validate:"required"`
	Name           string         `json:"name" validate:"required,max=255"`
	Difficulty     string         `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	EstimatedHours *float64       `json:"estimated_hours" validate:"omitnil,gte=0,lte=1000"`
	Completed      bool           `json:"completed"`
	Topics         []TopicRequest `json:"topics" validate:"omitempty,dive"`
}

// UpdateModuleRequest carries a partial module update. Topics are managed
// through the topic operations.
type UpdateModuleRequest struct {
	SubjectID      *string  `json:"subject_id" validate:"omitnil,min=1"`
	Name           *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Difficulty     *string  `json:"difficulty" validate:"omitnil,oneof=Easy Medium Hard"`
	EstimatedHours *float64 `json:"estimated_hours" validate:"omitnil,gte=0,lte=1000"`
	Completed      *bool    `json:"completed"`
}

// List returns the user's modules, optionally limited to one subject
func (s *ModuleService) List(ctx context.Context, userID, subjectID string) ([]model.Module, error) {
	return s.modules.List(ctx, userID, subjectID)
}

// Get returns one module with its topics
func (s *ModuleService) Get(ctx context.Context, userID, id string) (*model.Module, error) {
	module, err := s.modules.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound("module", err)
	}
	return module, nil
}

// Create stores a module under one of the user's subjects
func (s *ModuleService) Create(ctx context.Context, userID string, req CreateModuleRequest) (*model.Module, error) {
	if err := s.requireSubject(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	module := &model.Module{
		ID:             model.NewID(),
		UserID:         userID,
		SubjectID:      req.SubjectID,
		Name:           strings.TrimSpace(req.Name),
		Difficulty:     model.DifficultyMedium,
		EstimatedHours: model.DefaultEstimatedHours,
	}
	if module.Name == "" {
		return nil, invalid("name is required")
	}
	if req.Difficulty != "" {
		module.Difficulty = model.Difficulty(req.Difficulty)
	}
	if req.EstimatedHours != nil {
		module.EstimatedHours = *req.EstimatedHours
	}
	module.SetCompleted(req.Completed, s.now())

	module.Topics = make([]model.Topic, 0, len(req.Topics))
	for _, topicReq := range req.Topics {
		topic, err := s.newTopic(topicReq)
		if err != nil {
			return nil, err
		}
		module.Topics = append(module.Topics, topic)
	}
	module.Reindex()

	if err := s.modules.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// Update applies a partial module update
func (s *ModuleService) Update(ctx context.Context, userID, id string, req UpdateModuleRequest) (*model.Module, error) {
	module, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.SubjectID != nil && *req.SubjectID != module.SubjectID {
		if err := s.requireSubject(ctx, userID, *req.SubjectID); err != nil {
			return nil, err
		}
		module.SubjectID = *req.SubjectID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		module.Name = name
	}
	if req.Difficulty != nil {
		module.Difficulty = model.Difficulty(*req.Difficulty)
	}
	if req.EstimatedHours != nil {
		module.EstimatedHours = *req.EstimatedHours
	}
	if req.Completed != nil {
		module.SetCompleted(*req.Completed, s.now())
	}

	return s.save(ctx, module)
}

// Delete removes a module and its topics
func (s *ModuleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.modules.Delete(ctx, userID, id); err != nil {
		return notFound("module", err)
	}
	return nil
}

// AddTopic appends a topic to a module and returns the updated module
func (s *ModuleService) AddTopic(ctx context.Context, userID, moduleID string, req TopicRequest) (*model.Module, error) {
	module, err := s.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	topic, err := s.newTopic(req)
	if err != nil {
		return nil, err
	}
	module.Topics = append(module.Topics, topic)
	return s.save(ctx, module)
}

// UpdateTopic changes one topic addressed by its id
func (s *ModuleService) UpdateTopic(ctx context.Context, userID, moduleID, topicID string, req UpdateTopicRequest) (*model.Module, error) {
	module, err := s.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	idx := module.FindTopic(topicID)
	if idx < 0 {
		return nil, notFound("topic", repository.ErrNotFound)
	}

	topic := &module.Topics[idx]
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalid("title cannot be empty")
		}
		topic.Title = title
	}
	if req.Priority != nil {
		topic.Priority = model.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, err := s.parseOptionalInstant("due_date", *req.DueDate)
		if err != nil {
			return nil, err
		}
		topic.DueDate = dueDate
	}
	if req.Completed != nil {
		topic.Completed = *req.Completed
	}

	return s.save(ctx, module)
}

// DeleteTopic removes one topic addressed by its id
func (s *ModuleService) DeleteTopic(ctx context.Context, userID, moduleID, topicID string) (*model.Module, error) {
	module, err := s.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	idx := module.FindTopic(topicID)
	if idx < 0 {
		return nil, notFound("topic", repository.ErrNotFound)
	}
	module.Topics = append(module.Topics[:idx], module.Topics[idx+1:]...)
	return s.save(ctx, module)
}

func (s *ModuleService) save(ctx context.Context, module *model.Module) (*model.Module, error) {
	module.Reindex()
	if err := s.modules.Update(ctx, module); err != nil {
		return nil, notFound("module", err)
	}
	return module, nil
}

func (s *ModuleService) newTopic(req TopicRequest) (model.Topic, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Topic{}, invalid("topic title is required")
	}
	dueDate, err := s.parseOptionalInstant("due_date", req.DueDate)
	if err != nil {
		return model.Topic{}, err
	}
	topic := model.Topic{
		ID:        model.NewID(),
		Title:     title,
		Priority:  model.PriorityMedium,
		DueDate:   dueDate,
		Completed: req.Completed,
	}
	if req.Priority != "" {
		topic.Priority = model.Priority(req.Priority)
	}
	return topic, nil
}

func (s *ModuleService) requireSubject(ctx context.Context, userID, subjectID string) error {
	if strings.TrimSpace(subjectID) == "" {
		return invalid("subject_id is required")
	}
	if _, err := s.subjects.Get(ctx, userID, subjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("subject_id does not reference one of your subjects")
		}
		return err
	}
	return nil
}
