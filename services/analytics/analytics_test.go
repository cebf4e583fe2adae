package analytics

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/model"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 0))
	assert.Equal(t, 0, CompletionRate(3, 0))
	assert.Equal(t, 33, CompletionRate(1, 3))
	assert.Equal(t, 67, CompletionRate(2, 3))
	assert.Equal(t, 100, CompletionRate(4, 4))
}

func TestEmptyInputHasNoDistributionEntries(t *testing.T) {
	s := Build(Input{}, at("2026-03-10T12:00:00Z"), time.UTC)

	assert.Equal(t, TaskStats{}, s.TaskStats)
	assert.Equal(t, 0, s.ModuleStats.CompletionRate)
	assert.Empty(t, s.TaskStatus)
	assert.Empty(t, s.PriorityDistribution)
	assert.Empty(t, s.TypeDistribution)
	assert.Empty(t, s.DifficultyDistribution)
	assert.Empty(t, s.WeeklyTrend)
	assert.Len(t, s.ProductivityByTime, 4)
	assert.Len(t, s.StudyHours, 7)
	assert.Equal(t, "Mon", s.StudyHours[0].Day)
	assert.Equal(t, "Sun", s.StudyHours[6].Day)
}

func TestDistributionsDropZeroCounts(t *testing.T) {
	tasks := []model.Task{
		{Priority: model.PriorityHigh, Type: model.TaskTypeReading},
		{Priority: model.PriorityHigh, Type: model.TaskTypeReading, Completed: true, CompletedAt: ptr(at("2026-03-09T10:00:00Z"))},
	}
	modules := []model.Module{{Difficulty: model.DifficultyHard}}

	s := Build(Input{Tasks: tasks, Modules: modules}, at("2026-03-10T12:00:00Z"), time.UTC)

	assert.Equal(t, []Slice{{Name: "High", Value: 2, Color: "#EF4444"}}, s.PriorityDistribution)
	assert.Equal(t, []Slice{{Name: "Reading", Value: 2, Color: "#10B981"}}, s.TypeDistribution)
	assert.Equal(t, []Slice{{Name: "Hard", Value: 1, Color: "#EF4444"}}, s.DifficultyDistribution)
	assert.Equal(t, []Slice{
		{Name: "Completed", Value: 1, Color: "#10B981"},
		{Name: "Pending", Value: 1, Color: "#EF4444"},
	}, s.TaskStatus)
	for _, dist := range [][]Slice{s.TaskStatus, s.PriorityDistribution, s.TypeDistribution, s.DifficultyDistribution} {
		for _, slice := range dist {
			assert.Positive(t, slice.Value)
		}
	}
	assert.Equal(t, 50, s.TaskStats.CompletionRate)
}

func TestWeeklyTrendIsOrderedAndUnique(t *testing.T) {
	tasks := []model.Task{
		{Completed: true, CompletedAt: ptr(at("2026-03-20T10:00:00Z"))},
		{Completed: true, CompletedAt: ptr(at("2026-01-02T10:00:00Z"))},
		{Completed: true, CompletedAt: ptr(at("2026-03-21T10:00:00Z"))},
		// No completedAt: credited to updatedAt
		{Completed: true, UpdatedAt: at("2026-02-10T10:00:00Z"), CreatedAt: at("2026-01-01T10:00:00Z")},
		{Completed: false, CompletedAt: ptr(at("2026-02-10T10:00:00Z"))},
	}
	modules := []model.Module{
		{Completed: true, CompletedAt: ptr(at("2026-01-03T10:00:00Z"))},
	}

	s := Build(Input{Tasks: tasks, Modules: modules}, at("2026-03-25T12:00:00Z"), time.UTC)

	require.NotEmpty(t, s.WeeklyTrend)
	seen := map[string]bool{}
	prev := 0
	for _, p := range s.WeeklyTrend {
		assert.False(t, seen[p.Week], "duplicate week %s", p.Week)
		seen[p.Week] = true

		n, err := strconv.Atoi(strings.TrimPrefix(p.Week, "W"))
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}

	// Jan 1 2026 is a Thursday, so Jan 2 and Jan 3 share week 1
	assert.Equal(t, WeekPoint{Week: "W1", CompletedTasks: 1, CompletedModules: 1}, s.WeeklyTrend[0])
	last := s.WeeklyTrend[len(s.WeeklyTrend)-1]
	assert.Equal(t, 2, last.CompletedTasks)
}

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 1, WeekNumber(at("2026-01-01T00:00:00Z"), time.UTC))
	assert.Equal(t, 1, WeekNumber(at("2026-01-03T00:00:00Z"), time.UTC))
	assert.Equal(t, 2, WeekNumber(at("2026-01-04T00:00:00Z"), time.UTC))
}

func TestDeadlinePressureRangesOverlap(t *testing.T) {
	now := at("2026-03-10T12:00:00Z")
	tasks := []model.Task{
		{DueDate: ptr(now.Add(-2 * time.Hour))},     // today, already past
		{DueDate: ptr(now.Add(3 * time.Hour))},      // today, upcoming
		{DueDate: ptr(now.Add(48 * time.Hour))},     // within 3 days
		{DueDate: ptr(now.Add(5 * 24 * time.Hour))}, // within 7 days
		{DueDate: ptr(now.Add(10 * 24 * time.Hour))},
		{},
	}

	s := Build(Input{Tasks: tasks}, now, time.UTC)

	assert.Equal(t, []DeadlineRange{
		{Range: "Today", Count: 2},
		{Range: "Next 3 Days", Count: 2},
		{Range: "Next 7 Days", Count: 3},
	}, s.DeadlinePressure)
	assert.Equal(t, 1, s.TaskStats.Overdue)
}

func TestStudyHoursAndProductivity(t *testing.T) {
	slots := []model.ClassSlot{
		{Day: "Monday", StartTime: "09:00", EndTime: "11:00", Duration: 2, Attended: true},
		{Day: "Monday", StartTime: "14:00", EndTime: "15:00", Duration: 1},
		{Day: "Friday", StartTime: "19:00", EndTime: "20:00", Duration: 0},
	}
	tasks := []model.Task{
		// 2026-03-11 is a Wednesday; 23:00 falls in the Night bucket
		{Completed: true, CompletedAt: ptr(at("2026-03-11T23:00:00Z"))},
	}

	s := Build(Input{Tasks: tasks, Slots: slots}, at("2026-03-12T12:00:00Z"), time.UTC)

	assert.Equal(t, DayHours{Day: "Mon", Planned: 3, Actual: 2}, s.StudyHours[0])
	assert.Equal(t, DayHours{Day: "Wed", Planned: 0, Actual: 1}, s.StudyHours[2])
	assert.Equal(t, DayHours{Day: "Fri", Planned: 1, Actual: 0}, s.StudyHours[4])

	assert.Equal(t, []TimeBucket{
		{Time: "Morning", Classes: 1},
		{Time: "Afternoon", Classes: 1},
		{Time: "Evening", Classes: 1},
		{Time: "Night", Tasks: 1},
	}, s.ProductivityByTime)
}

func TestSubjectAllocation(t *testing.T) {
	subjects := []model.Subject{{ID: "a", Name: "Maths"}, {ID: "b", Name: ""}}
	modules := []model.Module{
		{SubjectID: "a", Completed: true},
		{SubjectID: "a"},
		{SubjectID: "b"},
		{SubjectID: "gone"},
	}

	s := Build(Input{Subjects: subjects, Modules: modules}, at("2026-03-12T12:00:00Z"), time.UTC)

	assert.Equal(t, []SubjectShare{
		{Subject: "Maths", TotalModules: 2, CompletedModules: 1},
		{Subject: "Unnamed", TotalModules: 1},
	}, s.SubjectAllocation)
}
