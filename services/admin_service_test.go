package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

func TestAdminCannotEditOrDeleteAdmins(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	admin := createUser(t, repos, "Root", "root@example.com", model.RoleAdmin)
	svc := NewAdminService(repos)

	_, err := svc.UpdateUser(ctx, admin.ID, UpdateUserRequest{Name: strPtr("Renamed")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Cannot edit admin account", Detail(err))

	err = svc.DeleteUser(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := repos.Users.Get(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Root", stored.Name)
}

func TestAdminDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Quin", "quin@example.com", model.RoleUser)
	keep := createUser(t, repos, "Rae", "rae@example.com", model.RoleUser)

	tasks := NewTaskService(repos.Tasks, time.UTC)
	events := NewEventService(repos.Events, time.UTC)
	subjects := NewSubjectService(repos.Subjects, repos.Modules)
	modules := NewModuleService(repos.Modules, repos.Subjects, time.UTC)
	slots := NewTimetableService(repos.Slots)

	for _, owner := range []*model.User{user, keep} {
		_, err := tasks.Create(ctx, owner.ID, CreateTaskRequest{Title: "t"})
		require.NoError(t, err)
		_, err = events.Create(ctx, owner.ID, CreateEventRequest{Title: "e", Date: "2026-05-01"})
		require.NoError(t, err)
		subject, err := subjects.Create(ctx, owner.ID, CreateSubjectRequest{Name: "s"})
		require.NoError(t, err)
		_, err = modules.Create(ctx, owner.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "m"})
		require.NoError(t, err)
		_, err = slots.Create(ctx, owner.ID, ClassSlotRequest{Subject: "c", Day: "Friday", StartTime: "10:00", EndTime: "11:00"})
		require.NoError(t, err)
	}

	svc := NewAdminService(repos)
	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err := repos.Users.Get(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	count := func(userID string) []int {
		ts, err := repos.Tasks.List(ctx, repository.TaskFilter{UserID: userID})
		require.NoError(t, err)
		es, err := repos.Events.List(ctx, repository.EventFilter{UserID: userID})
		require.NoError(t, err)
		ss, err := repos.Subjects.List(ctx, userID)
		require.NoError(t, err)
		ms, err := repos.Modules.List(ctx, userID, "")
		require.NoError(t, err)
		cs, err := repos.Slots.List(ctx, userID, "")
		require.NoError(t, err)
		return []int{len(ts), len(es), len(ss), len(ms), len(cs)}
	}
	assert.Equal(t, []int{0, 0, 0, 0, 0}, count(user.ID))
	assert.Equal(t, []int{1, 1, 1, 1, 1}, count(keep.ID))
}

func TestAdminCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	createUser(t, repos, "Sam", "sam@example.com", model.RoleUser)
	svc := NewAdminService(repos)

	_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Sam Again", Email: " SAM@example.com "})
	assert.ErrorIs(t, err, ErrConflict)

	created, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Tia", Email: "tia@example.com"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.Stats.TotalUsers)
	assert.Len(t, overview.Users, 2)

	users, total, q, err := svc.ListUsers(ctx, ListUsersQuery{Search: "tia"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Limit)
}
