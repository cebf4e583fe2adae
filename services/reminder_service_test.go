package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/services/mailer"
)

// flakyMailer fails for the listed recipients and records the rest
type flakyMailer struct {
	failFor map[string]bool

	mu   sync.Mutex
	sent []mailer.Message
}

func (m *flakyMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.failFor[msg.To] {
		return errors.New("smtp: connection refused")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func newConsoleMailer() *mailer.ConsoleMailer {
	return mailer.NewConsoleMailer(mail.Address{Name: "StudyFlow", Address: "noreply@studyflow.local"}, true)
}

func createDueTask(t *testing.T, repos repository.Repositories, userID, title string, due time.Time) *model.Task {
	t.Helper()
	task := &model.Task{
		UserID:   userID,
		Title:    title,
		DueDate:  &due,
		Priority: model.PriorityMedium,
		Type:     model.TaskTypeHomework,
	}
	require.NoError(t, repos.Tasks.Create(context.Background(), task))
	return task
}

func TestReminderWindow(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Ivy", "ivy@example.com", model.RoleUser)
	m := newConsoleMailer()
	svc := NewReminderService(repos, m, 0, time.UTC)

	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	task := createDueTask(t, repos, user.ID, "Lab report", due)

	// T+5: inside the window, sent once
	svc.SetNow(fixedClock(due.Add(5 * time.Minute)))
	result, err := svc.DispatchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Reminders sent successfully", result.Message)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Recipients)
	require.Len(t, m.Sent(), 1)
	assert.Equal(t, "ivy@example.com", m.Sent()[0].To)
	assert.Contains(t, m.Sent()[0].Text, "Lab report")

	stored, err := repos.Tasks.Get(ctx, user.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.ReminderSent)
	require.NotNil(t, stored.ReminderSentAt)

	// T+8: still inside the window but already reminded
	svc.SetNow(fixedClock(due.Add(8 * time.Minute)))
	result, err = svc.DispatchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "No new reminders", result.Message)
	assert.Zero(t, result.Count)
	assert.Len(t, m.Sent(), 1)
}

func TestReminderMissedWindowIsNeverSent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Jon", "jon@example.com", model.RoleUser)
	m := newConsoleMailer()
	svc := NewReminderService(repos, m, DefaultReminderWindow, time.UTC)

	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	createDueTask(t, repos, user.ID, "Quiz prep", due)

	// T+15: the first scan after the item fell due is too late
	svc.SetNow(fixedClock(due.Add(15 * time.Minute)))
	result, err := svc.DispatchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "No new reminders", result.Message)
	assert.Empty(t, m.Sent())
}

func TestReminderSkipsCompletedAndFutureTasks(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Kai", "kai@example.com", model.RoleUser)
	m := newConsoleMailer()
	svc := NewReminderService(repos, m, DefaultReminderWindow, time.UTC)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	done := createDueTask(t, repos, user.ID, "Finished", now.Add(-2*time.Minute))
	done.SetCompleted(true, now)
	require.NoError(t, repos.Tasks.Update(ctx, done))
	createDueTask(t, repos, user.ID, "Tomorrow", now.Add(24*time.Hour))

	svc.SetNow(fixedClock(now))
	result, err := svc.DispatchAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, m.Sent())
}

func TestReminderFailureIsIsolatedPerRecipient(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	broken := createUser(t, repos, "Lea", "lea@example.com", model.RoleUser)
	healthy := createUser(t, repos, "Max", "max@example.com", model.RoleUser)
	m := &flakyMailer{failFor: map[string]bool{"lea@example.com": true}}
	svc := NewReminderService(repos, m, DefaultReminderWindow, time.UTC)

	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	brokenTask := createDueTask(t, repos, broken.ID, "Unsent", due)
	createDueTask(t, repos, healthy.ID, "Sent", due)

	svc.SetNow(fixedClock(due.Add(3 * time.Minute)))
	result, err := svc.DispatchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Recipients)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Count)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "max@example.com", m.sent[0].To)

	// The failed recipient's task stays eligible for the next scan
	stored, err := repos.Tasks.Get(ctx, broken.ID, brokenTask.ID)
	require.NoError(t, err)
	assert.False(t, stored.ReminderSent)
}

func TestReminderBatchesTasksAndEventsPerUser(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Nia", "nia@example.com", model.RoleUser)
	m := newConsoleMailer()
	svc := NewReminderService(repos, m, DefaultReminderWindow, time.UTC)

	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	createDueTask(t, repos, user.ID, "Problem set <3>", due)
	event := &model.Event{
		UserID:          user.ID,
		Title:           "Midterm",
		DateTime:        due.Add(time.Minute),
		Time:            "12:01",
		Type:            model.EventTypeExam,
		ReminderEnabled: true,
	}
	require.NoError(t, repos.Events.Create(ctx, event))

	svc.SetNow(fixedClock(due.Add(4 * time.Minute)))
	result, err := svc.DispatchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.Recipients)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "⏰ Task Reminder - StudyFlow", sent[0].Subject)
	assert.Equal(t, 2, strings.Count(sent[0].Text, "• "))
	assert.Contains(t, sent[0].HTML, "Problem set &lt;3&gt;")

	storedEvent, err := repos.Events.Get(ctx, user.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, storedEvent.ReminderSent)
}

func TestDispatchForUserOnlyTouchesCaller(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	caller := createUser(t, repos, "Oli", "oli@example.com", model.RoleUser)
	other := createUser(t, repos, "Pam", "pam@example.com", model.RoleUser)
	m := newConsoleMailer()
	svc := NewReminderService(repos, m, DefaultReminderWindow, time.UTC)

	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	createDueTask(t, repos, caller.ID, "Mine", due)
	otherTask := createDueTask(t, repos, other.ID, "Theirs", due)

	svc.SetNow(fixedClock(due.Add(time.Minute)))
	result, err := svc.DispatchForUser(ctx, caller.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, m.Sent(), 1)
	assert.Equal(t, "oli@example.com", m.Sent()[0].To)

	stored, err := repos.Tasks.Get(ctx, other.ID, otherTask.ID)
	require.NoError(t, err)
	assert.False(t, stored.ReminderSent)

	_, err = svc.DispatchForUser(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
