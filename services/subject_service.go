package services

import (
	"context"
	"strings"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// SubjectService manages subjects. Module counters are computed on every read.
type SubjectService struct {
	subjects repository.SubjectRepository
	modules  repository.ModuleRepository
}

// NewSubjectService creates a new subject service
func NewSubjectService(subjects repository.SubjectRepository, modules repository.ModuleRepository) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		modules:  modules,
	}
}

// CreateSubjectRequest represents the request to create a subject
type CreateSubjectRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateSubjectRequest carries a partial subject update
type UpdateSubjectRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=255"`
	Color *string `json:"color" validate:"omitnil,hexcolor"`
}

// SubjectDetail is a subject together with its modules
type SubjectDetail struct {
	*model.Subject
	Modules []model.Module `json:"modules"`
}

// List returns the user's subjects with live module counters
func (s *SubjectService) List(ctx context.Context, userID string) ([]model.Subject, error) {
	subjects, err := s.subjects.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.modules.CountBySubject(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		subjects[i].ApplyCounts(counts[subjects[i].ID])
	}
	return subjects, nil
}

// Get returns one subject with its counters
func (s *SubjectService) Get(ctx context.Context, userID, id string) (*model.Subject, error) {
	subject, err := s.subjects.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound("subject", err)
	}
	if err := s.withCounts(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// GetDetail returns one subject with its counters and modules
func (s *SubjectService) GetDetail(ctx context.Context, userID, id string) (*SubjectDetail, error) {
	subject, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	modules, err := s.modules.List(ctx, userID, subject.ID)
	if err != nil {
		return nil, err
	}
	return &SubjectDetail{Subject: subject, Modules: modules}, nil
}

// Create stores a new subject. Colors are unique per user.
func (s *SubjectService) Create(ctx context.Context, userID string, req CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Color:  normalizeColor(req.Color),
	}
	if subject.Name == "" {
		return nil, invalid("name is required")
	}
	if err := s.ensureColorFree(ctx, userID, subject.Color, ""); err != nil {
		return nil, err
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, conflictOnDuplicate("a subject with this color already exists", err)
	}
	return subject, nil
}

// Update applies a partial update
func (s *SubjectService) Update(ctx context.Context, userID, id string, req UpdateSubjectRequest) (*model.Subject, error) {
	subject, err := s.subjects.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound("subject", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		subject.Name = name
	}
	if req.Color != nil {
		color := normalizeColor(*req.Color)
		if color != subject.Color {
			if err := s.ensureColorFree(ctx, userID, color, subject.ID); err != nil {
				return nil, err
			}
		}
		subject.Color = color
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, conflictOnDuplicate("a subject with this color already exists", notFound("subject", err))
	}
	if err := s.withCounts(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject and every module filed under it
func (s *SubjectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.subjects.Get(ctx, userID, id); err != nil {
		return notFound("subject", err)
	}
	if err := s.modules.DeleteBySubject(ctx, userID, id); err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, userID, id); err != nil {
		return notFound("subject", err)
	}
	return nil
}

func (s *SubjectService) withCounts(ctx context.Context, subject *model.Subject) error {
	counts, err := s.modules.CountBySubject(ctx, subject.UserID)
	if err != nil {
		return err
	}
	subject.ApplyCounts(counts[subject.ID])
	return nil
}

func (s *SubjectService) ensureColorFree(ctx context.Context, userID, color, excludeID string) error {
	taken, err := s.subjects.ColorTaken(ctx, userID, color, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return conflictOnDuplicate("a subject with this color already exists", repository.ErrDuplicate)
	}
	return nil
}

func normalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return model.DefaultSubjectColor
	}
	return strings.ToUpper(color)
}
