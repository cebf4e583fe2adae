package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
)

func TestSettingsPartialUpdate(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Asha", "asha@example.com", model.RoleUser)
	svc := NewSettingsService(repos.Users)

	hours := 3.5
	hard := 2.0
	updated, err := svc.Update(ctx, user.ID, UpdateSettingsRequest{
		StudyHoursPerDay:    &hours,
		PreferredStudyTimes: []string{"06:00-08:00"},
		DifficultyWeights:   &DifficultyWeightsRequest{Hard: &hard},
	})
	require.NoError(t, err)
	assert.Equal(t, 3.5, updated.StudyHoursPerDay)
	assert.Equal(t, 4.0, updated.DailyGoalHours, "untouched fields keep their value")
	assert.Equal(t, model.DifficultyWeights{Easy: 1, Medium: 1, Hard: 2}, updated.DifficultyWeights)

	stored, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"06:00-08:00"}, stored.PreferredStudyTimes)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
