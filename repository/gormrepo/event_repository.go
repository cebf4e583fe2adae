package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// EventRepository handles CRUD for calendar events.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) filtered(ctx context.Context, filter repository.EventFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Event{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if !filter.From.IsZero() {
		query = query.Where("date_time >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query = query.Where("date_time <= ?", filter.To.UTC())
	}
	return query
}

func (r *EventRepository) List(ctx context.Context, filter repository.EventFilter) ([]model.Event, error) {
	events := []model.Event{}
	if err := r.filtered(ctx, filter).Order("date_time ASC").Find(&events).Error; err != nil {
		return nil, translate("list events", err)
	}
	return events, nil
}

func (r *EventRepository) Count(ctx context.Context, filter repository.EventFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, translate("count events", err)
	}
	return count, nil
}

func (r *EventRepository) Get(ctx context.Context, userID, id string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&event).Error; err != nil {
		return nil, translate("get event", err)
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if event.ID == "" {
		event.ID = model.NewID()
	}
	return translate("create event", r.db.WithContext(ctx).Create(event).Error)
}

func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	return translate("update event", r.db.WithContext(ctx).Save(event).Error)
}

func (r *EventRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(r.db.WithContext(ctx), &model.Event{}, userID, id, "delete event")
}

func (r *EventRepository) DeleteByUser(ctx context.Context, userID string) error {
	return translate("delete user events", r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Event{}).Error)
}

func (r *EventRepository) DueForReminder(ctx context.Context, userID string, from, to time.Time) ([]model.Event, error) {
	events := []model.Event{}
	query := r.db.WithContext(ctx).
		Where("reminder_enabled = ?", true).
		Where("(reminder_sent = ? OR reminder_sent IS NULL)", false).
		Where("date_time >= ? AND date_time <= ?", from.UTC(), to.UTC())
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Order("user_id ASC").Order("date_time ASC").Find(&events).Error; err != nil {
		return nil, translate("find due events", err)
	}
	return events, nil
}

func (r *EventRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"reminder_sent":    true,
			"reminder_sent_at": at.UTC(),
		}).Error
	return translate("mark events reminded", err)
}
