package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// AdminService backs the admin API: user management, platform counters,
// the audit trail and background job history.
type AdminService struct {
	repos repository.Repositories
}

// NewAdminService creates a new admin service
func NewAdminService(repos repository.Repositories) *AdminService {
	return &AdminService{repos: repos}
}

// CreateUserRequest represents the request to create a user record.
// Credentials are owned by the identity provider.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=320"`
	Role  string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest carries a partial user update
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=255"`
	Email *string `json:"email" validate:"omitnil,email,max=320"`
	Role  *string `json:"role" validate:"omitnil,oneof=user admin"`
}

// ListUsersQuery represents the query parameters for listing users
type ListUsersQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Role   string `query:"role"`
	Search string `query:"search"`
}

// PlatformStats are the admin overview counters
type PlatformStats struct {
	TotalUsers  int64 `json:"total_users"`
	TotalTasks  int64 `json:"total_tasks"`
	TotalEvents int64 `json:"total_events"`
}

// AdminOverview is the admin landing payload
type AdminOverview struct {
	Stats PlatformStats `json:"stats"`
	Users []model.User  `json:"users"`
}

// Overview returns platform counters and the full user list
func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	totalUsers, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTasks, err := s.repos.Tasks.Count(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	totalEvents, err := s.repos.Events.Count(ctx, repository.EventFilter{})
	if err != nil {
		return nil, err
	}
	users, _, err := s.repos.Users.List(ctx, repository.UserListOptions{})
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		Stats: PlatformStats{
			TotalUsers:  totalUsers,
			TotalTasks:  totalTasks,
			TotalEvents: totalEvents,
		},
		Users: users,
	}, nil
}

// ListUsers pages through users. Page defaults to 1 and limit to 20, capped at 100.
func (s *AdminService) ListUsers(ctx context.Context, q ListUsersQuery) ([]model.User, int64, ListUsersQuery, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	users, total, err := s.repos.Users.List(ctx, repository.UserListOptions{
		Search: strings.TrimSpace(q.Search),
		Role:   q.Role,
		Offset: (q.Page - 1) * q.Limit,
		Limit:  q.Limit,
	})
	return users, total, q, err
}

// GetUser returns one user
func (s *AdminService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repos.Users.Get(ctx, id)
	if err != nil {
		return nil, notFound("user", err)
	}
	return user, nil
}

// CreateUser adds a user record without credentials
func (s *AdminService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    model.NormalizeEmail(req.Email),
		Role:     model.RoleUser,
		Settings: model.DefaultUserSettings(),
	}
	if user.Name == "" {
		return nil, invalid("name is required")
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if err := s.ensureEmailFree(ctx, user.Email, ""); err != nil {
		return nil, err
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, conflictOnDuplicate("User already exists", err)
	}
	return user, nil
}

// UpdateUser edits a non-admin account
func (s *AdminService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, forbidden("Cannot edit admin account")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		user.Name = name
	}
	if req.Email != nil {
		email := model.NormalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, conflictOnDuplicate("User already exists", notFound("user", err))
	}
	return user, nil
}

// DeleteUser removes a non-admin account together with everything it owns
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return forbidden("Cannot delete admin account")
	}

	cascade := []struct {
		what string
		run  func(context.Context, string) error
	}{
		{"tasks", s.repos.Tasks.DeleteByUser},
		{"events", s.repos.Events.DeleteByUser},
		{"modules", s.repos.Modules.DeleteByUser},
		{"subjects", s.repos.Subjects.DeleteByUser},
		{"class slots", s.repos.Slots.DeleteByUser},
	}
	for _, step := range cascade {
		if err := step.run(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete %s of user %s: %w", step.what, user.ID, err)
		}
	}

	if err := s.repos.Users.Delete(ctx, user.ID); err != nil {
		return notFound("user", err)
	}
	return nil
}

// AuditLogs returns the most recent admin actions
func (s *AdminService) AuditLogs(ctx context.Context, limit int) ([]model.AdminAuditLog, error) {
	return s.repos.AuditLogs.Recent(ctx, clampLimit(limit))
}

// JobLogs returns recent background job runs, optionally for one job
func (s *AdminService) JobLogs(ctx context.Context, jobName string, limit int) ([]model.CronJobLog, error) {
	return s.repos.JobLogs.Recent(ctx, jobName, clampLimit(limit))
}

func (s *AdminService) ensureEmailFree(ctx context.Context, email, excludeID string) error {
	existing, err := s.repos.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.ID != excludeID {
			return conflictOnDuplicate("User already exists", repository.ErrDuplicate)
		}
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

func clampLimit(limit int) int {
	if limit < 1 || limit > 200 {
		return 50
	}
	return limit
}
