package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
)

func TestEventDefaultsAndPartialReschedule(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Uma", "uma@example.com", model.RoleUser)
	svc := NewEventService(repos.Events, time.UTC)

	event, err := svc.Create(ctx, user.ID, CreateEventRequest{Title: "Finals", Date: "2026-05-20"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultEventTime, event.Time)
	assert.Equal(t, model.EventTypeExam, event.Type)
	assert.True(t, event.ReminderEnabled)
	assert.True(t, event.DateTime.Equal(time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)))

	require.NoError(t, repos.Events.MarkReminded(ctx, []string{event.ID}, time.Now()))

	// Changing only the time keeps the date and re-arms the reminder
	event, err = svc.Update(ctx, user.ID, event.ID, UpdateEventRequest{Time: strPtr("14:30")})
	require.NoError(t, err)
	assert.True(t, event.DateTime.Equal(time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "14:30", event.Time)
	assert.False(t, event.ReminderSent)

	_, err = svc.Create(ctx, user.ID, CreateEventRequest{Title: "Bad", Date: "20-05-2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEventListFilters(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Vic", "vic@example.com", model.RoleUser)
	svc := NewEventService(repos.Events, time.UTC)
	svc.SetNow(fixedClock(time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)))

	for _, date := range []string{"2026-05-01", "2026-05-10", "2026-05-15", "2026-05-31"} {
		_, err := svc.Create(ctx, user.ID, CreateEventRequest{Title: date, Date: date, Time: "08:00"})
		require.NoError(t, err)
	}

	titles := func(events []model.Event) []string {
		out := make([]string, 0, len(events))
		for _, e := range events {
			out = append(out, e.Title)
		}
		return out
	}

	// Upcoming starts at the beginning of today, so this morning's event counts
	upcoming, err := svc.List(ctx, user.ID, EventQuery{Upcoming: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-05-10", "2026-05-15", "2026-05-31"}, titles(upcoming))

	// to is inclusive of the whole day
	ranged, err := svc.List(ctx, user.ID, EventQuery{From: "2026-05-01", To: "2026-05-15"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-05-01", "2026-05-10", "2026-05-15"}, titles(ranged))

	_, err = svc.List(ctx, user.ID, EventQuery{From: "May 1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Wes", "wes@example.com", model.RoleUser)
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	tasks := NewTaskService(repos.Tasks, time.UTC)
	events := NewEventService(repos.Events, time.UTC)
	subjects := NewSubjectService(repos.Subjects, repos.Modules)
	modules := NewModuleService(repos.Modules, repos.Subjects, time.UTC)

	for i, due := range []string{"2026-05-10T08:00:00Z", "2026-05-10T20:00:00Z", "2026-05-11T08:00:00Z", "", "2026-05-12", "2026-05-13", "2026-05-14"} {
		_, err := tasks.Create(ctx, user.ID, CreateTaskRequest{Title: "task", DueDate: due, Completed: i == 0})
		require.NoError(t, err)
	}
	_, err := events.Create(ctx, user.ID, CreateEventRequest{Title: "yesterday", Date: "2026-05-09"})
	require.NoError(t, err)
	_, err = events.Create(ctx, user.ID, CreateEventRequest{Title: "this morning", Date: "2026-05-10", Time: "07:00"})
	require.NoError(t, err)
	subject, err := subjects.Create(ctx, user.ID, CreateSubjectRequest{Name: "Maths"})
	require.NoError(t, err)
	_, err = modules.Create(ctx, user.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "Limits", Completed: true})
	require.NoError(t, err)
	_, err = modules.Create(ctx, user.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "Series"})
	require.NoError(t, err)

	svc := NewAnalyticsService(repos, time.UTC)
	svc.SetNow(fixedClock(now))
	dashboard, err := svc.Dashboard(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, DashboardStats{
		TotalTasks:       7,
		CompletedTasks:   1,
		TodayTasks:       2,
		UpcomingEvents:   1,
		TotalModules:     2,
		CompletedModules: 1,
	}, dashboard.Stats)
	assert.Len(t, dashboard.UpcomingTasks, 5)
	for _, task := range dashboard.UpcomingTasks {
		assert.False(t, task.Completed)
	}
	require.Len(t, dashboard.UpcomingEventsList, 1)
	assert.Equal(t, "this morning", dashboard.UpcomingEventsList[0].Title)

	summary, err := svc.Analytics(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.TaskStats.Total)
	assert.Equal(t, 50, summary.ModuleStats.CompletionRate)
}
