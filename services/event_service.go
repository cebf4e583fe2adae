package services

import (
	"context"
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// EventService manages calendar events
type EventService struct {
	clock
	events repository.EventRepository
}

// NewEventService creates a new event service
func NewEventService(events repository.EventRepository, loc *time.Location) *EventService {
	return &EventService{
		clock:  newClock(loc),
		events: events,
	}
}

// CreateEventRequest represents the request to create an event.
// Date and time are combined in the configured time zone.
type CreateEventRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	Description     string `json:"description" validate:"max=5000"`
	Date            string `json:"date" validate:"required,date"`
	Time            string `json:"time" validate:"omitempty,hhmm"`
	Type            string `json:"type" validate:"omitempty,oneof=Exam Meeting Placement Deadline Other"`
	Location        string `json:"location" validate:"max=255"`
	MeetLink        string `json:"meet_link" validate:"omitempty,url,max=512"`
	ReminderEnabled *bool  `json:"reminder_enabled"`
}

// UpdateEventRequest carries a partial event update. Changing only the date
// keeps the stored time of day and vice versa.
type UpdateEventRequest struct {
	Title           *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description     *string `json:"description" validate:"omitnil,max=5000"`
	Date            *string `json:"date" validate:"omitnil,date"`
	Time            *string `json:"time" validate:"omitnil,hhmm"`
	Type            *string `json:"type" validate:"omitnil,oneof=Exam Meeting Placement Deadline Other"`
	Location        *string `json:"location" validate:"omitnil,max=255"`
	MeetLink        *string `json:"meet_link" validate:"omitnil,max=512"`
	ReminderEnabled *bool   `json:"reminder_enabled"`
}

// EventQuery filters an event listing. From and To are YYYY-MM-DD dates, both inclusive.
type EventQuery struct {
	Upcoming bool
	From     string
	To       string
}

// List returns the user's events in chronological order
func (s *EventService) List(ctx context.Context, userID string, query EventQuery) ([]model.Event, error) {
	filter := repository.EventFilter{UserID: userID}

	if query.From != "" {
		from, err := time.ParseInLocation(dateLayout, query.From, s.loc)
		if err != nil {
			return nil, invalid("from must be in YYYY-MM-DD format")
		}
		filter.From = from
	}
	if query.To != "" {
		to, err := time.ParseInLocation(dateLayout, query.To, s.loc)
		if err != nil {
			return nil, invalid("to must be in YYYY-MM-DD format")
		}
		filter.To = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if query.Upcoming {
		today := startOfDay(s.current())
		if filter.From.IsZero() || filter.From.Before(today) {
			filter.From = today
		}
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return []model.Event{}, nil
	}

	return s.events.List(ctx, filter)
}

// Get returns one of the user's events
func (s *EventService) Get(ctx context.Context, userID, id string) (*model.Event, error) {
	event, err := s.events.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound("event", err)
	}
	return event, nil
}

// Create stores a new event
func (s *EventService) Create(ctx context.Context, userID string, req CreateEventRequest) (*model.Event, error) {
	clockTime := strings.TrimSpace(req.Time)
	if clockTime == "" {
		clockTime = model.DefaultEventTime
	}
	at, err := s.combineDateTime(req.Date, clockTime)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		UserID:          userID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DateTime:        at.UTC(),
		Time:            at.Format("15:04"),
		Type:            model.EventTypeExam,
		Location:        strings.TrimSpace(req.Location),
		MeetLink:        strings.TrimSpace(req.MeetLink),
		ReminderEnabled: true,
	}
	if event.Title == "" {
		return nil, invalid("title is required")
	}
	if req.Type != "" {
		event.Type = model.EventType(req.Type)
	}
	if req.ReminderEnabled != nil {
		event.ReminderEnabled = *req.ReminderEnabled
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update applies a partial update. Moving the event re-arms its reminder.
func (s *EventService) Update(ctx context.Context, userID, id string, req UpdateEventRequest) (*model.Event, error) {
	event, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalid("title cannot be empty")
		}
		event.Title = title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil || req.Time != nil {
		local := event.DateTime.In(s.loc)
		date := local.Format(dateLayout)
		clockTime := local.Format("15:04")
		if req.Date != nil {
			date = *req.Date
		}
		if req.Time != nil {
			clockTime = *req.Time
		}
		at, err := s.combineDateTime(date, clockTime)
		if err != nil {
			return nil, err
		}
		if !at.Equal(event.DateTime) {
			event.ReminderSent = false
			event.ReminderSentAt = nil
		}
		event.DateTime = at.UTC()
		event.Time = at.Format("15:04")
	}
	if req.Type != nil {
		event.Type = model.EventType(*req.Type)
	}
	if req.Location != nil {
		event.Location = strings.TrimSpace(*req.Location)
	}
	if req.MeetLink != nil {
		event.MeetLink = strings.TrimSpace(*req.MeetLink)
	}
	if req.ReminderEnabled != nil {
		event.ReminderEnabled = *req.ReminderEnabled
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, notFound("event", err)
	}
	return event, nil
}

// Delete removes one of the user's events
func (s *EventService) Delete(ctx context.Context, userID, id string) error {
	if err := s.events.Delete(ctx, userID, id); err != nil {
		return notFound("event", err)
	}
	return nil
}
