package model

import "time"

// EventType classifies calendar events
type EventType string

const (
	EventTypeExam      EventType = "Exam"
	EventTypeMeeting   EventType = "Meeting"
	EventTypePlacement EventType = "Placement"
	EventTypeDeadline  EventType = "Deadline"
	EventTypeOther     EventType = "Other"
)

// DefaultEventTime is used when an event is created without a time of day
const DefaultEventTime = "09:00"

// Event is a dated calendar entry such as an exam or meeting
type Event struct {
	ID              string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID          string     `gorm:"type:varchar(36);not null;index:idx_events_user_date" bson:"user_id" json:"user_id"`
	Title           string     `gorm:"type:varchar(255);not null" bson:"title" json:"title"`
	Description     string     `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	DateTime        time.Time  `gorm:"not null;index:idx_events_user_date;index:idx_events_reminder" bson:"date_time" json:"date_time"`
	Time            string     `gorm:"type:varchar(5);not null;default:'09:00'" bson:"time" json:"time"`
	Type            EventType  `gorm:"type:varchar(20);not null;default:'Exam'" bson:"type" json:"type"`
	Location        string     `gorm:"type:varchar(255)" bson:"location,omitempty" json:"location,omitempty"`
	MeetLink        string     `gorm:"type:varchar(512)" bson:"meet_link,omitempty" json:"meet_link,omitempty"`
	ReminderEnabled bool       `gorm:"not null" bson:"reminder_enabled" json:"reminder_enabled"`
	ReminderSent    bool       `gorm:"not null;default:false;index:idx_events_reminder" bson:"reminder_sent" json:"reminder_sent"`
	ReminderSentAt  *time.Time `bson:"reminder_sent_at,omitempty" json:"reminder_sent_at,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}
