package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sahilchouksey/studyflow/model"
)

// DispatchReminders runs one reminder scan unless another is still in progress.
// It reports whether the scan ran.
func (m *CronManager) DispatchReminders() bool {
	if !m.running.CompareAndSwap(false, true) {
		log.Printf("[CRON] Skipping job: %s, previous run still in progress", JobDispatchReminders)
		return false
	}
	defer m.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if m.locker != nil {
		token := uuid.NewString()
		acquired, err := m.locker.TryLock(ctx, reminderLockKey, token, reminderLockTTL)
		if err != nil {
			// Redis being down must not stop reminders on a single instance
			log.Printf("[CRON] Lock unavailable for %s, running unlocked: %v", JobDispatchReminders, err)
		} else if !acquired {
			log.Printf("[CRON] Skipping job: %s, another instance holds the lock", JobDispatchReminders)
			return false
		} else {
			defer func() {
				if err := m.locker.Unlock(context.Background(), reminderLockKey, token); err != nil {
					log.Printf("[CRON] Failed to release lock for %s: %v", JobDispatchReminders, err)
				}
			}()
		}
	}

	entry := m.logJobStart(ctx, JobDispatchReminders)

	result, err := m.reminders.DispatchAll(ctx)
	if err != nil {
		m.logJobError(ctx, entry, err)
		return true
	}

	m.logJobComplete(ctx, entry, result.Message, map[string]interface{}{
		"count":      result.Count,
		"recipients": result.Recipients,
		"failed":     result.Failed,
	})
	return true
}

// PruneJobLogs removes job log entries older than JobLogRetention
func (m *CronManager) PruneJobLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	entry := m.logJobStart(ctx, JobPruneJobLogs)

	cutoff := m.now().Add(-JobLogRetention)
	deleted, err := m.logs.DeleteBefore(ctx, cutoff)
	if err != nil {
		m.logJobError(ctx, entry, fmt.Errorf("failed to prune job logs: %w", err))
		return
	}

	m.logJobComplete(ctx, entry, fmt.Sprintf("Deleted %d job logs older than %s", deleted, cutoff.Format(time.RFC3339)), nil)
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(ctx context.Context, jobName string) *model.CronJobLog {
	startedAt := m.now()
	log.Printf("[CRON] Starting job: %s at %s", jobName, startedAt.Format(time.RFC3339))

	// Log to database
	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.JobStatusRunning,
		StartedAt: startedAt.UTC(),
		Metadata:  datatypes.JSON("{}"),
	}
	if err := m.logs.Create(ctx, entry); err != nil {
		log.Printf("[CRON] Failed to record start of %s: %v", jobName, err)
	}
	return entry
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(ctx context.Context, entry *model.CronJobLog, message string, metadata map[string]interface{}) {
	log.Printf("[CRON] Completed job: %s - %s", entry.JobName, message)

	entry.Finish(model.JobStatusCompleted, m.now())
	entry.Message = message
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	m.saveEntry(ctx, entry)
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(ctx context.Context, entry *model.CronJobLog, err error) {
	log.Printf("[CRON] Error in job: %s - %v", entry.JobName, err)

	entry.Finish(model.JobStatusFailed, m.now())
	entry.ErrorMsg = err.Error()
	m.saveEntry(ctx, entry)
}

func (m *CronManager) saveEntry(ctx context.Context, entry *model.CronJobLog) {
	if entry.ID == "" {
		return
	}
	if err := m.logs.Update(ctx, entry); err != nil {
		log.Printf("[CRON] Failed to update log of %s: %v", entry.JobName, err)
	}
}
