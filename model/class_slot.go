package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Weekday names accepted for class slots, Monday first
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DefaultSlotDuration is used when start and end times do not yield a usable length
const DefaultSlotDuration = 1

// ClassSlot is a recurring weekly class
type ClassSlot struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" bson:"user_id" json:"user_id"`
	Subject   string    `gorm:"type:varchar(255);not null" bson:"subject" json:"subject"`
	Day       string    `gorm:"type:varchar(10);not null" bson:"day" json:"day"`
	StartTime string    `gorm:"type:varchar(5);not null" bson:"start_time" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" bson:"end_time" json:"end_time"`
	Room      string    `gorm:"type:varchar(100)" bson:"room,omitempty" json:"room,omitempty"`
	Professor string    `gorm:"type:varchar(255)" bson:"professor,omitempty" json:"professor,omitempty"`
	Duration  float64   `gorm:"not null;default:1" bson:"duration" json:"duration"`
	Attended  bool      `gorm:"not null;default:false" bson:"attended" json:"attended"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TableName specifies the table name for ClassSlot
func (ClassSlot) TableName() string {
	return "class_slots"
}

// ParseClock parses a 24h "HH:MM" string
func ParseClock(value string) (hour, minute int, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// SlotDuration returns the whole-hour length between two clock times.
// Overnight slots wrap past midnight. Unusable input yields DefaultSlotDuration.
func SlotDuration(start, end string) float64 {
	sh, sm, ok := ParseClock(start)
	if !ok {
		return DefaultSlotDuration
	}
	eh, em, ok := ParseClock(end)
	if !ok {
		return DefaultSlotDuration
	}
	const day = 24 * 60
	diff := ((eh*60+em)-(sh*60+sm)+day) % day
	hours := math.Round(float64(diff) / 60)
	if hours <= 0 {
		return DefaultSlotDuration
	}
	return hours
}

// RefreshDuration recomputes the stored duration from the slot's times
func (s *ClassSlot) RefreshDuration() {
	s.Duration = SlotDuration(s.StartTime, s.EndTime)
}

// EffectiveDuration is the duration used for planning, never below zero
func (s *ClassSlot) EffectiveDuration() float64 {
	if s.Duration <= 0 {
		return DefaultSlotDuration
	}
	return s.Duration
}
