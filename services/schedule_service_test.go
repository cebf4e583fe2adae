package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
)

type scheduleFixture struct {
	subjects *SubjectService
	modules  *ModuleService
	user     *model.User
}

func newScheduleFixture(t *testing.T) scheduleFixture {
	repos := newTestRepos(t)
	return scheduleFixture{
		subjects: NewSubjectService(repos.Subjects, repos.Modules),
		modules:  NewModuleService(repos.Modules, repos.Subjects, time.UTC),
		user:     createUser(t, repos, "Gia", "gia@example.com", model.RoleUser),
	}
}

func TestSubjectCountersFollowModules(t *testing.T) {
	ctx := context.Background()
	f := newScheduleFixture(t)

	subject, err := f.subjects.Create(ctx, f.user.ID, CreateSubjectRequest{Name: "Algorithms", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", subject.Color)

	counters := func() (int64, int64) {
		got, err := f.subjects.Get(ctx, f.user.ID, subject.ID)
		require.NoError(t, err)
		return got.TotalModules, got.CompletedModules
	}

	m1, err := f.modules.Create(ctx, f.user.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "Sorting"})
	require.NoError(t, err)
	_, err = f.modules.Create(ctx, f.user.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "Graphs", Completed: true})
	require.NoError(t, err)

	total, completed := counters()
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), completed)

	_, err = f.modules.Update(ctx, f.user.ID, m1.ID, UpdateModuleRequest{Completed: boolPtr(true)})
	require.NoError(t, err)
	total, completed = counters()
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(2), completed)

	require.NoError(t, f.modules.Delete(ctx, f.user.ID, m1.ID))
	total, completed = counters()
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), completed)

	listed, err := f.subjects.List(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(1), listed[0].TotalModules)
}

func TestSubjectColorIsUniquePerUser(t *testing.T) {
	ctx := context.Background()
	f := newScheduleFixture(t)

	_, err := f.subjects.Create(ctx, f.user.ID, CreateSubjectRequest{Name: "Physics"})
	require.NoError(t, err)

	_, err = f.subjects.Create(ctx, f.user.ID, CreateSubjectRequest{Name: "Chemistry", Color: "#3b82f6"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "a subject with this color already exists", Detail(err))
}

func TestDeleteSubjectCascadesModules(t *testing.T) {
	ctx := context.Background()
	f := newScheduleFixture(t)

	subject, err := f.subjects.Create(ctx, f.user.ID, CreateSubjectRequest{Name: "Databases"})
	require.NoError(t, err)
	module, err := f.modules.Create(ctx, f.user.ID, CreateModuleRequest{
		SubjectID: subject.ID,
		Name:      "Normal forms",
		Topics:    []TopicRequest{{Title: "1NF"}, {Title: "BCNF"}},
	})
	require.NoError(t, err)

	require.NoError(t, f.subjects.Delete(ctx, f.user.ID, subject.ID))

	_, err = f.modules.Get(ctx, f.user.ID, module.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.subjects.Get(ctx, f.user.ID, subject.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModuleRequiresOwnedSubject(t *testing.T) {
	ctx := context.Background()
	f := newScheduleFixture(t)

	_, err := f.modules.Create(ctx, f.user.ID, CreateModuleRequest{SubjectID: "missing", Name: "Orphan"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestModuleKeepsExplicitZeroEstimate(t *testing.T) {
	ctx := context.Background()
	f := newScheduleFixture(t)

	subject, err := f.subjects.Create(ctx, f.user.ID, CreateSubjectRequest{Name: "Chemistry", Color: "#00ff00"})
	require.NoError(t, err)

	zero := 0.0
	created, err := f.modules.Create(ctx, f.user.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "Review", EstimatedHours: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.EstimatedHours)

	stored, err := f.modules.Get(ctx, f.user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.EstimatedHours)

	// Omitted estimates still get the default
	defaulted, err := f.modules.Create(ctx, f.user.ID, CreateModuleRequest{SubjectID: subject.ID, Name: "Bonding"})
	require.NoError(t, err)
	assert.Equal(t, float64(model.DefaultEstimatedHours), defaulted.EstimatedHours)
}

func TestTopicsAreAddressedByID(t *testing.T) {
	ctx := context.Background()
	f := newScheduleFixture(t)

	subject, err := f.subjects.Create(ctx, f.user.ID, CreateSubjectRequest{Name: "Networks"})
	require.NoError(t, err)
	module, err := f.modules.Create(ctx, f.user.ID, CreateModuleRequest{
		SubjectID: subject.ID,
		Name:      "Transport layer",
		Topics:    []TopicRequest{{Title: "TCP"}, {Title: "UDP"}},
	})
	require.NoError(t, err)
	require.Len(t, module.Topics, 2)
	tcpID, udpID := module.Topics[0].ID, module.Topics[1].ID
	assert.NotEmpty(t, tcpID)
	assert.NotEqual(t, tcpID, udpID)

	module, err = f.modules.AddTopic(ctx, f.user.ID, module.ID, TopicRequest{Title: "QUIC", Priority: "High"})
	require.NoError(t, err)
	require.Len(t, module.Topics, 3)

	// Removing the first topic must not shift which topic udpID refers to
	module, err = f.modules.DeleteTopic(ctx, f.user.ID, module.ID, tcpID)
	require.NoError(t, err)
	require.Len(t, module.Topics, 2)

	module, err = f.modules.UpdateTopic(ctx, f.user.ID, module.ID, udpID, UpdateTopicRequest{Completed: boolPtr(true)})
	require.NoError(t, err)
	idx := module.FindTopic(udpID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "UDP", module.Topics[idx].Title)
	assert.True(t, module.Topics[idx].Completed)

	stored, err := f.modules.Get(ctx, f.user.ID, module.ID)
	require.NoError(t, err)
	require.Len(t, stored.Topics, 2)
	assert.Equal(t, "UDP", stored.Topics[0].Title)
	assert.Equal(t, "QUIC", stored.Topics[1].Title)

	_, err = f.modules.UpdateTopic(ctx, f.user.ID, module.ID, tcpID, UpdateTopicRequest{Title: strPtr("gone")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimetableDuration(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := createUser(t, repos, "Hal", "hal@example.com", model.RoleUser)
	svc := NewTimetableService(repos.Slots)

	slot, err := svc.Create(ctx, user.ID, ClassSlotRequest{Subject: "OS", Day: "Monday", StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, slot.Duration)

	slot, err = svc.Update(ctx, user.ID, slot.ID, UpdateClassSlotRequest{EndTime: strPtr("12:00")})
	require.NoError(t, err)
	assert.Equal(t, 3.0, slot.Duration)

	monday, err := svc.List(ctx, user.ID, "Monday")
	require.NoError(t, err)
	assert.Len(t, monday, 1)
	tuesday, err := svc.List(ctx, user.ID, "Tuesday")
	require.NoError(t, err)
	assert.Empty(t, tuesday)

	_, err = svc.List(ctx, user.ID, "Funday")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
