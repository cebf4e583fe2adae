package services

import (
	"context"
	"time"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/services/analytics"
)

const dashboardListSize = 5

// DashboardStats are the headline counters of the dashboard
type DashboardStats struct {
	TotalTasks       int   `json:"total_tasks"`
	CompletedTasks   int   `json:"completed_tasks"`
	TodayTasks       int   `json:"today_tasks"`
	UpcomingEvents   int   `json:"upcoming_events"`
	TotalModules     int64 `json:"total_modules"`
	CompletedModules int64 `json:"completed_modules"`
}

// Dashboard is the landing page payload
type Dashboard struct {
	Stats              DashboardStats `json:"stats"`
	UpcomingTasks      []model.Task   `json:"upcoming_tasks"`
	UpcomingEventsList []model.Event  `json:"upcoming_events_list"`
}

// AnalyticsService serves the dashboard and analytics views of one user
type AnalyticsService struct {
	clock
	repos repository.Repositories
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repos repository.Repositories, loc *time.Location) *AnalyticsService {
	return &AnalyticsService{
		clock: newClock(loc),
		repos: repos,
	}
}

// Dashboard summarises today's workload. "Today" is the calendar day in the configured zone.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	today := startOfDay(s.current())
	tomorrow := today.AddDate(0, 0, 1)

	tasks, err := s.repos.Tasks.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	events, err := s.repos.Events.List(ctx, repository.EventFilter{UserID: userID, From: today})
	if err != nil {
		return nil, err
	}
	counts, err := s.repos.Modules.CountBySubject(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Stats: DashboardStats{
			TotalTasks:     len(tasks),
			UpcomingEvents: len(events),
		},
		UpcomingTasks:      []model.Task{},
		UpcomingEventsList: events,
	}
	for _, c := range counts {
		dashboard.Stats.TotalModules += c.Total
		dashboard.Stats.CompletedModules += c.Completed
	}

	for _, t := range tasks {
		if t.Completed {
			dashboard.Stats.CompletedTasks++
		} else if len(dashboard.UpcomingTasks) < dashboardListSize {
			dashboard.UpcomingTasks = append(dashboard.UpcomingTasks, t)
		}
		if t.DueDate != nil && !t.DueDate.Before(today) && t.DueDate.Before(tomorrow) {
			dashboard.Stats.TodayTasks++
		}
	}
	if len(dashboard.UpcomingEventsList) > dashboardListSize {
		dashboard.UpcomingEventsList = dashboard.UpcomingEventsList[:dashboardListSize]
	}

	return dashboard, nil
}

// Analytics loads the user's collections and builds the analytics summary
func (s *AnalyticsService) Analytics(ctx context.Context, userID string) (*analytics.Summary, error) {
	tasks, err := s.repos.Tasks.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	modules, err := s.repos.Modules.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	subjects, err := s.repos.Subjects.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	slots, err := s.repos.Slots.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	summary := analytics.Build(analytics.Input{
		Tasks:    tasks,
		Modules:  modules,
		Subjects: subjects,
		Slots:    slots,
	}, s.now(), s.loc)
	return &summary, nil
}
