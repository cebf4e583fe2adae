package cron

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/services"
)

const (
	JobDispatchReminders = "dispatch_reminders"
	JobPruneJobLogs      = "prune_job_logs"

	// DefaultReminderSchedule runs the reminder scan once a minute
	DefaultReminderSchedule = "@every 1m"
	// pruneSchedule runs daily at 3 AM
	pruneSchedule = "0 0 3 * * *"

	// JobLogRetention is how long job log entries are kept
	JobLogRetention = 30 * 24 * time.Hour

	reminderLockKey = "cron:lock:" + JobDispatchReminders
	reminderLockTTL = 5 * time.Minute
)

// ReminderDispatcher runs one privileged reminder scan
type ReminderDispatcher interface {
	DispatchAll(ctx context.Context) (*services.ReminderResult, error)
}

// Locker is a lock shared between instances, satisfied by the Redis cache
type Locker interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	logs      repository.JobLogRepository
	reminders ReminderDispatcher
	locker    Locker
	schedule  string

	// running guards the reminder job against overlapping ticks
	running atomic.Bool
	now     func() time.Time
}

// NewCronManager creates a new cron manager. locker may be nil when only one
// instance runs the scheduler.
func NewCronManager(logs repository.JobLogRepository, reminders ReminderDispatcher, locker Locker, schedule string) *CronManager {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		logs:      logs,
		reminders: reminders,
		locker:    locker,
		schedule:  schedule,
		now:       time.Now,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Register all jobs
	if err := m.registerJobs(); err != nil {
		return err
	}

	// Start the cron scheduler
	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Reminder scan on the configured schedule
	_, err := m.cron.AddFunc(m.schedule, func() {
		m.DispatchReminders()
	})
	if err != nil {
		return err
	}

	// 2. Daily at 3 AM: prune old job logs
	_, err = m.cron.AddFunc(pruneSchedule, func() {
		m.PruneJobLogs()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}
