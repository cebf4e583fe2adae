package services

import (
	"context"
	"strings"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// TimetableService manages weekly class slots
type TimetableService struct {
	slots repository.ClassSlotRepository
}

// NewTimetableService creates a new timetable service
func NewTimetableService(slots repository.ClassSlotRepository) *TimetableService {
	return &TimetableService{slots: slots}
}

// ClassSlotRequest represents the request to create a class slot
type ClassSlotRequest struct {
	Subject   string `json:"subject" validate:"required,max=255"`
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	Room      string `json:"room" validate:"max=100"`
	Professor string `json:"professor" validate:"max=255"`
	Attended  bool   `json:"attended"`
}

// UpdateClassSlotRequest carries a partial slot update
type UpdateClassSlotRequest struct {
	Subject   *string `json:"subject" validate:"omitnil,min=1,max=255"`
	Day       *string `json:"day" validate:"omitnil,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime *string `json:"start_time" validate:"omitnil,hhmm"`
	EndTime   *string `json:"end_time" validate:"omitnil,hhmm"`
	Room      *string `json:"room" validate:"omitnil,max=100"`
	Professor *string `json:"professor" validate:"omitnil,max=255"`
	Attended  *bool   `json:"attended"`
}

// List returns the week's slots, or one day's when day is set
func (s *TimetableService) List(ctx context.Context, userID, day string) ([]model.ClassSlot, error) {
	if day != "" && !isWeekday(day) {
		return nil, invalid("day must be one of %s", strings.Join(model.Weekdays, ", "))
	}
	return s.slots.List(ctx, userID, day)
}

// Create stores a slot with its duration derived from start and end
func (s *TimetableService) Create(ctx context.Context, userID string, req ClassSlotRequest) (*model.ClassSlot, error) {
	slot := &model.ClassSlot{
		UserID:    userID,
		Subject:   strings.TrimSpace(req.Subject),
		Day:       req.Day,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		Room:      strings.TrimSpace(req.Room),
		Professor: strings.TrimSpace(req.Professor),
		Attended:  req.Attended,
	}
	if slot.Subject == "" {
		return nil, invalid("subject is required")
	}
	if !isWeekday(slot.Day) {
		return nil, invalid("day must be one of %s", strings.Join(model.Weekdays, ", "))
	}
	slot.RefreshDuration()

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Update applies a partial update and recomputes the duration
func (s *TimetableService) Update(ctx context.Context, userID, id string, req UpdateClassSlotRequest) (*model.ClassSlot, error) {
	slot, err := s.slots.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound("class slot", err)
	}

	if req.Subject != nil {
		subject := strings.TrimSpace(*req.Subject)
		if subject == "" {
			return nil, invalid("subject cannot be empty")
		}
		slot.Subject = subject
	}
	if req.Day != nil {
		if !isWeekday(*req.Day) {
			return nil, invalid("day must be one of %s", strings.Join(model.Weekdays, ", "))
		}
		slot.Day = *req.Day
	}
	if req.StartTime != nil {
		slot.StartTime = strings.TrimSpace(*req.StartTime)
	}
	if req.EndTime != nil {
		slot.EndTime = strings.TrimSpace(*req.EndTime)
	}
	if req.Room != nil {
		slot.Room = strings.TrimSpace(*req.Room)
	}
	if req.Professor != nil {
		slot.Professor = strings.TrimSpace(*req.Professor)
	}
	if req.Attended != nil {
		slot.Attended = *req.Attended
	}
	slot.RefreshDuration()

	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, notFound("class slot", err)
	}
	return slot, nil
}

// Delete removes one of the user's slots
func (s *TimetableService) Delete(ctx context.Context, userID, id string) error {
	if err := s.slots.Delete(ctx, userID, id); err != nil {
		return notFound("class slot", err)
	}
	return nil
}

func isWeekday(day string) bool {
	for _, d := range model.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
