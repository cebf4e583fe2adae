package model

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque identifier for a stored document
func NewID() string {
	return uuid.NewString()
}

// Priority is shared by tasks and topics
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists priorities in display order
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// timePtr returns a UTC copy of t as a pointer
func timePtr(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
