package services

import (
	"context"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// SettingsService reads and updates a user's profile and study preferences
type SettingsService struct {
	users repository.UserRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(users repository.UserRepository) *SettingsService {
	return &SettingsService{users: users}
}

// DifficultyWeightsRequest carries partial difficulty weights
type DifficultyWeightsRequest struct {
	Easy   *float64 `json:"easy" validate:"omitnil,gte=0,lte=10"`
	Medium *float64 `json:"medium" validate:"omitnil,gte=0,lte=10"`
	Hard   *float64 `json:"hard" validate:"omitnil,gte=0,lte=10"`
}

// UpdateSettingsRequest carries a partial settings update
type UpdateSettingsRequest struct {
	StudyHoursPerDay    *float64                  `json:"study_hours_per_day" validate:"omitnil,gte=0,lte=24"`
	PreferredStudyTimes []string                  `json:"preferred_study_times" validate:"omitempty,dive,timerange"`
	DifficultyWeights   *DifficultyWeightsRequest `json:"difficulty_weights"`
	DailyGoalHours      *float64                  `json:"daily_goal_hours" validate:"omitnil,gte=0,lte=24"`
}

// Profile returns the caller's account
func (s *SettingsService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, notFound("user", err)
	}
	return user, nil
}

// Get returns the caller's settings
func (s *SettingsService) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user.Settings, nil
}

// Update merges the given fields into the caller's settings
func (s *SettingsService) Update(ctx context.Context, userID string, req UpdateSettingsRequest) (*model.UserSettings, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := &user.Settings
	if req.StudyHoursPerDay != nil {
		settings.StudyHoursPerDay = *req.StudyHoursPerDay
	}
	if req.PreferredStudyTimes != nil {
		settings.PreferredStudyTimes = req.PreferredStudyTimes
	}
	if req.DifficultyWeights != nil {
		if req.DifficultyWeights.Easy != nil {
			settings.DifficultyWeights.Easy = *req.DifficultyWeights.Easy
		}
		if req.DifficultyWeights.Medium != nil {
			settings.DifficultyWeights.Medium = *req.DifficultyWeights.Medium
		}
		if req.DifficultyWeights.Hard != nil {
			settings.DifficultyWeights.Hard = *req.DifficultyWeights.Hard
		}
	}
	if req.DailyGoalHours != nil {
		settings.DailyGoalHours = *req.DailyGoalHours
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFound("user", err)
	}
	return settings, nil
}
