package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
)

func TestTaskCompletedAtRoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Asha", "asha@example.com", model.RoleUser)

	svc := NewTaskService(repos.Tasks, time.UTC)
	t1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.SetNow(fixedClock(t1))

	task, err := svc.Create(ctx, user.ID, CreateTaskRequest{Title: "Read chapter 4"})
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)

	// false -> true stamps completedAt
	task, err = svc.Update(ctx, user.ID, task.ID, UpdateTaskRequest{Completed: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(t1))

	// true -> true keeps the first stamp
	svc.SetNow(fixedClock(t1.Add(2 * time.Hour)))
	task, err = svc.Update(ctx, user.ID, task.ID, UpdateTaskRequest{Completed: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(t1))

	// true -> false clears it
	task, err = svc.Update(ctx, user.ID, task.ID, UpdateTaskRequest{Completed: boolPtr(false)})
	require.NoError(t, err)
	assert.Nil(t, task.CompletedAt)

	stored, err := svc.Get(ctx, user.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	assert.Nil(t, stored.CompletedAt)
}

func TestTaskCreatedCompletedIsStamped(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "Ben", "ben@example.com", model.RoleUser)

	svc := NewTaskService(repos.Tasks, time.UTC)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.SetNow(fixedClock(now))

	task, err := svc.Create(context.Background(), user.ID, CreateTaskRequest{Title: "Done already", Completed: true})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(now))
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.TaskTypeOther, task.Type)
}

func TestTaskDueDateChangeRearmsReminder(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Cara", "cara@example.com", model.RoleUser)
	svc := NewTaskService(repos.Tasks, time.UTC)

	task, err := svc.Create(ctx, user.ID, CreateTaskRequest{Title: "Essay", DueDate: "2026-03-10T12:00:00Z"})
	require.NoError(t, err)
	require.NoError(t, repos.Tasks.MarkReminded(ctx, []string{task.ID}, time.Now()))

	// Same instant keeps the flag
	task, err = svc.Update(ctx, user.ID, task.ID, UpdateTaskRequest{DueDate: strPtr("2026-03-10T12:00:00Z")})
	require.NoError(t, err)
	assert.True(t, task.ReminderSent)

	task, err = svc.Update(ctx, user.ID, task.ID, UpdateTaskRequest{DueDate: strPtr("2026-03-11T12:00:00Z")})
	require.NoError(t, err)
	assert.False(t, task.ReminderSent)
	assert.Nil(t, task.ReminderSentAt)
}

func TestTaskScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	owner := createUser(t, repos, "Dev", "dev@example.com", model.RoleUser)
	other := createUser(t, repos, "Eli", "eli@example.com", model.RoleUser)
	svc := NewTaskService(repos.Tasks, time.UTC)

	task, err := svc.Create(ctx, owner.ID, CreateTaskRequest{Title: "Private"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, task.ID), ErrNotFound)

	_, err = svc.Create(ctx, owner.ID, CreateTaskRequest{Title: "Bad date", DueDate: "next tuesday"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskListSortsUndatedLast(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Fay", "fay@example.com", model.RoleUser)
	svc := NewTaskService(repos.Tasks, time.UTC)

	_, err := svc.Create(ctx, user.ID, CreateTaskRequest{Title: "undated"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.ID, CreateTaskRequest{Title: "later", DueDate: "2026-04-02"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.ID, CreateTaskRequest{Title: "sooner", DueDate: "2026-04-01", Priority: "High"})
	require.NoError(t, err)

	tasks, err := svc.List(ctx, user.ID, TaskQuery{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"sooner", "later", "undated"}, []string{tasks[0].Title, tasks[1].Title, tasks[2].Title})

	high, err := svc.List(ctx, user.ID, TaskQuery{Priority: "High"})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "sooner", high[0].Title)
}
