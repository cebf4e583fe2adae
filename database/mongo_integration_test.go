package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

func startTestMongo(t *testing.T) repository.Repositories {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	store, err := StartMongo(&config.EnvironmentVariable{
		MONGODB_URI:      uri,
		MONGODB_DATABASE: fmt.Sprintf("studyflow_test_%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	require.NoError(t, store.Init())
	t.Cleanup(func() {
		_ = store.Database().Drop(context.Background())
		_ = store.Close()
	})
	return store.Repositories()
}

func TestMongoScheduleRepositories(t *testing.T) {
	ctx := context.Background()
	repos := startTestMongo(t)

	subject := &model.Subject{UserID: "u1", Name: "Physics", Color: "#3B82F6"}
	require.NoError(t, repos.Subjects.Create(ctx, subject))

	taken, err := repos.Subjects.ColorTaken(ctx, "u1", "#3B82F6", "")
	require.NoError(t, err)
	assert.True(t, taken)

	module := &model.Module{ID: model.NewID(), UserID: "u1", SubjectID: subject.ID, Name: "Optics",
		Topics: []model.Topic{{Title: "Lenses"}, {Title: "Mirrors"}}}
	module.Reindex()
	require.NoError(t, repos.Modules.Create(ctx, module))
	done := &model.Module{ID: model.NewID(), UserID: "u1", SubjectID: subject.ID, Name: "Waves", Completed: true}
	require.NoError(t, repos.Modules.Create(ctx, done))

	counts, err := repos.Modules.CountBySubject(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.ModuleCounts{Total: 2, Completed: 1}, counts[subject.ID])

	stored, err := repos.Modules.Get(ctx, "u1", module.ID)
	require.NoError(t, err)
	require.Len(t, stored.Topics, 2)
	assert.Equal(t, module.Topics[1].ID, stored.Topics[1].ID)

	_, err = repos.Modules.Get(ctx, "u2", module.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repos.Modules.DeleteBySubject(ctx, "u1", subject.ID))
	modules, err := repos.Modules.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestMongoTaskReminderSelection(t *testing.T) {
	ctx := context.Background()
	repos := startTestMongo(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	due := now.Add(-5 * time.Minute)
	later := now.Add(time.Hour)
	inWindow := &model.Task{UserID: "u1", Title: "Essay", DueDate: &due, Priority: model.PriorityHigh, Type: model.TaskTypeAssignment}
	future := &model.Task{UserID: "u1", Title: "Lab", DueDate: &later, Priority: model.PriorityLow, Type: model.TaskTypeOther}
	require.NoError(t, repos.Tasks.Create(ctx, inWindow))
	require.NoError(t, repos.Tasks.Create(ctx, future))

	selected, err := repos.Tasks.DueForReminder(ctx, "", now.Add(-10*time.Minute), now)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, inWindow.ID, selected[0].ID)

	require.NoError(t, repos.Tasks.MarkReminded(ctx, []string{inWindow.ID}, now))
	selected, err = repos.Tasks.DueForReminder(ctx, "", now.Add(-10*time.Minute), now)
	require.NoError(t, err)
	assert.Empty(t, selected)
}
