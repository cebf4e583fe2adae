// Package analytics turns a user's tasks, modules, subjects and class slots
// into the summary shown on the analytics page. Build is a pure function:
// callers load the collections and pass the clock and zone in.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/model"
)

// Input is the already-scoped data of one user
type Input struct {
	Tasks    []model.Task
	Modules  []model.Module
	Subjects []model.Subject
	Slots    []model.ClassSlot
}

type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"`
}

type ModuleStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completion_rate"`
}

// Slice is one named, colored share of a distribution
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type WeekPoint struct {
	Week             string `json:"week"`
	CompletedTasks   int    `json:"completed_tasks"`
	CompletedModules int    `json:"completed_modules"`
}

type TimeBucket struct {
	Time    string `json:"time"`
	Tasks   int    `json:"tasks"`
	Classes int    `json:"classes"`
}

type SubjectShare struct {
	Subject          string `json:"subject"`
	TotalModules     int    `json:"total_modules"`
	CompletedModules int    `json:"completed_modules"`
}

type DayHours struct {
	Day     string  `json:"day"`
	Planned float64 `json:"planned"`
	Actual  float64 `json:"actual"`
}

type DeadlineRange struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Summary is the flat analytics object returned to clients
type Summary struct {
	TaskStats              TaskStats       `json:"task_stats"`
	ModuleStats            ModuleStats     `json:"module_stats"`
	TaskStatus             []Slice         `json:"task_status"`
	PriorityDistribution   []Slice         `json:"priority_distribution"`
	TypeDistribution       []Slice         `json:"type_distribution"`
	DifficultyDistribution []Slice         `json:"difficulty_distribution"`
	WeeklyTrend            []WeekPoint     `json:"weekly_trend"`
	ProductivityByTime     []TimeBucket    `json:"productivity_by_time"`
	SubjectAllocation      []SubjectShare  `json:"subject_allocation"`
	StudyHours             []DayHours      `json:"study_hours"`
	DeadlinePressure       []DeadlineRange `json:"deadline_pressure"`
}

const (
	colorGreen  = "#10B981"
	colorRed    = "#EF4444"
	colorAmber  = "#F59E0B"
	colorBlue   = "#3B82F6"
	colorPurple = "#8B5CF6"
	colorGray   = "#6B7280"
)

var priorityColors = map[model.Priority]string{
	model.PriorityHigh:   colorRed,
	model.PriorityMedium: colorAmber,
	model.PriorityLow:    colorGreen,
}

var typeColors = map[model.TaskType]string{
	model.TaskTypeHomework:   colorBlue,
	model.TaskTypeAssignment: colorPurple,
	model.TaskTypeProject:    colorAmber,
	model.TaskTypeReading:    colorGreen,
	model.TaskTypeOther:      colorGray,
}

var difficultyColors = map[model.Difficulty]string{
	model.DifficultyEasy:   colorGreen,
	model.DifficultyMedium: colorAmber,
	model.DifficultyHard:   colorRed,
}

// Time-of-day buckets in display order; Night covers every other hour
var timeBuckets = []struct {
	name       string
	start, end int
}{
	{"Morning", 6, 12},
	{"Afternoon", 12, 17},
	{"Evening", 17, 22},
	{"Night", 0, 0},
}

// Build computes the full summary as of now. Calendar dates and hours are read in loc.
func Build(in Input, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	return Summary{
		TaskStats:              taskStats(in.Tasks, now),
		ModuleStats:            moduleStats(in.Modules),
		TaskStatus:             taskStatus(in.Tasks),
		PriorityDistribution:   priorityDistribution(in.Tasks),
		TypeDistribution:       typeDistribution(in.Tasks),
		DifficultyDistribution: difficultyDistribution(in.Modules),
		WeeklyTrend:            weeklyTrend(in.Tasks, in.Modules, loc),
		ProductivityByTime:     productivityByTime(in.Tasks, in.Slots, loc),
		SubjectAllocation:      subjectAllocation(in.Subjects, in.Modules),
		StudyHours:             studyHours(in.Tasks, in.Slots, loc),
		DeadlinePressure:       deadlinePressure(in.Tasks, now),
	}
}

// CompletionRate is round(completed/total*100), or 0 for an empty set
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// WeekNumber numbers the week of t's calendar date in loc, counting the
// partial week holding January 1st as week 1.
func WeekNumber(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	jan1 := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := local.YearDay() - 1
	return int(math.Ceil(float64(days+int(jan1.Weekday())+1) / 7))
}

func taskStats(tasks []model.Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
			continue
		}
		if t.DueDate != nil && !t.DueDate.IsZero() && t.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	stats.CompletionRate = CompletionRate(stats.Completed, stats.Total)
	return stats
}

func moduleStats(modules []model.Module) ModuleStats {
	stats := ModuleStats{Total: len(modules)}
	for _, m := range modules {
		if m.Completed {
			stats.Completed++
		}
	}
	stats.CompletionRate = CompletionRate(stats.Completed, stats.Total)
	return stats
}

func taskStatus(tasks []model.Task) []Slice {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return nonZero([]Slice{
		{Name: "Completed", Value: completed, Color: colorGreen},
		{Name: "Pending", Value: len(tasks) - completed, Color: colorRed},
	})
}

func priorityDistribution(tasks []model.Task) []Slice {
	counts := make(map[model.Priority]int)
	for _, t := range tasks {
		counts[t.Priority]++
	}
	slices := make([]Slice, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		slices = append(slices, Slice{Name: string(p), Value: counts[p], Color: priorityColors[p]})
	}
	return nonZero(slices)
}

func typeDistribution(tasks []model.Task) []Slice {
	counts := make(map[model.TaskType]int)
	for _, t := range tasks {
		counts[t.Type]++
	}
	slices := make([]Slice, 0, len(model.TaskTypes))
	for _, tt := range model.TaskTypes {
		slices = append(slices, Slice{Name: string(tt), Value: counts[tt], Color: typeColors[tt]})
	}
	return nonZero(slices)
}

func difficultyDistribution(modules []model.Module) []Slice {
	counts := make(map[model.Difficulty]int)
	for _, m := range modules {
		counts[m.Difficulty]++
	}
	slices := make([]Slice, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		slices = append(slices, Slice{Name: string(d), Value: counts[d], Color: difficultyColors[d]})
	}
	return nonZero(slices)
}

func nonZero(slices []Slice) []Slice {
	out := slices[:0]
	for _, s := range slices {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}

// completionInstant picks the instant a completed item is credited to
func completionInstant(completedAt *time.Time, updatedAt, createdAt time.Time) (time.Time, bool) {
	switch {
	case completedAt != nil && !completedAt.IsZero():
		return *completedAt, true
	case !updatedAt.IsZero():
		return updatedAt, true
	case !createdAt.IsZero():
		return createdAt, true
	}
	return time.Time{}, false
}

func weeklyTrend(tasks []model.Task, modules []model.Module, loc *time.Location) []WeekPoint {
	byWeek := make(map[int]*WeekPoint)
	point := func(at time.Time) *WeekPoint {
		n := WeekNumber(at, loc)
		p, ok := byWeek[n]
		if !ok {
			p = &WeekPoint{Week: "W" + strconv.Itoa(n)}
			byWeek[n] = p
		}
		return p
	}

	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		if at, ok := completionInstant(t.CompletedAt, t.UpdatedAt, t.CreatedAt); ok {
			point(at).CompletedTasks++
		}
	}
	for _, m := range modules {
		if !m.Completed {
			continue
		}
		if at, ok := completionInstant(m.CompletedAt, m.UpdatedAt, m.CreatedAt); ok {
			point(at).CompletedModules++
		}
	}

	weeks := make([]int, 0, len(byWeek))
	for n := range byWeek {
		weeks = append(weeks, n)
	}
	sort.Ints(weeks)

	trend := make([]WeekPoint, 0, len(weeks))
	for _, n := range weeks {
		trend = append(trend, *byWeek[n])
	}
	return trend
}

func bucketIndex(hour int) int {
	for i, b := range timeBuckets[:len(timeBuckets)-1] {
		if hour >= b.start && hour < b.end {
			return i
		}
	}
	return len(timeBuckets) - 1
}

func productivityByTime(tasks []model.Task, slots []model.ClassSlot, loc *time.Location) []TimeBucket {
	buckets := make([]TimeBucket, len(timeBuckets))
	for i, b := range timeBuckets {
		buckets[i].Time = b.name
	}

	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		if at, ok := completionInstant(t.CompletedAt, t.UpdatedAt, t.CreatedAt); ok {
			buckets[bucketIndex(at.In(loc).Hour())].Tasks++
		}
	}
	for _, s := range slots {
		if hour, _, ok := model.ParseClock(s.StartTime); ok {
			buckets[bucketIndex(hour)].Classes++
		}
	}
	return buckets
}

func subjectAllocation(subjects []model.Subject, modules []model.Module) []SubjectShare {
	shares := make([]SubjectShare, 0, len(subjects))
	index := make(map[string]int, len(subjects))
	for _, s := range subjects {
		name := s.Name
		if strings.TrimSpace(name) == "" {
			name = "Unnamed"
		}
		index[s.ID] = len(shares)
		shares = append(shares, SubjectShare{Subject: name})
	}
	for _, m := range modules {
		i, ok := index[m.SubjectID]
		if !ok {
			continue
		}
		shares[i].TotalModules++
		if m.Completed {
			shares[i].CompletedModules++
		}
	}
	return shares
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func studyHours(tasks []model.Task, slots []model.ClassSlot, loc *time.Location) []DayHours {
	hours := make([]DayHours, len(weekOrder))
	position := make(map[time.Weekday]int, len(weekOrder))
	for i, wd := range weekOrder {
		hours[i].Day = wd.String()[:3]
		position[wd] = i
	}

	for _, s := range slots {
		i := dayIndex(s.Day)
		if i < 0 {
			continue
		}
		hours[i].Planned += s.EffectiveDuration()
		if s.Attended {
			hours[i].Actual += s.EffectiveDuration()
		}
	}
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		if at, ok := completionInstant(t.CompletedAt, t.UpdatedAt, t.CreatedAt); ok {
			hours[position[at.In(loc).Weekday()]].Actual++
		}
	}
	return hours
}

// dayIndex maps a slot day name to its Monday-first position, or -1
func dayIndex(day string) int {
	for i, name := range model.Weekdays {
		if strings.EqualFold(name, day) {
			return i
		}
	}
	return -1
}

func deadlinePressure(tasks []model.Task, now time.Time) []DeadlineRange {
	today := DeadlineRange{Range: "Today"}
	next3 := DeadlineRange{Range: "Next 3 Days"}
	next7 := DeadlineRange{Range: "Next 7 Days"}

	y, m, d := now.Date()
	for _, t := range tasks {
		if t.DueDate == nil || t.DueDate.IsZero() {
			continue
		}
		due := t.DueDate.In(now.Location())
		if dy, dm, dd := due.Date(); dy == y && dm == m && dd == d {
			today.Count++
		}
		if due.Before(now) {
			continue
		}
		if !due.After(now.Add(3 * 24 * time.Hour)) {
			next3.Count++
		}
		if !due.After(now.Add(7 * 24 * time.Hour)) {
			next7.Count++
		}
	}
	return []DeadlineRange{today, next3, next7}
}
