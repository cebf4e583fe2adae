package services

import (
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/model"
)

// Accepted layouts for client supplied instants. Layouts without a zone are
// read in the configured location.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

const dateLayout = "2006-01-02"

// clock carries the current time source and the zone calendar dates are read in
type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = time.UTC
	}
	return clock{now: utcNow(time.Now), loc: loc}
}

// SetNow replaces the time source
func (c *clock) SetNow(now func() time.Time) {
	c.now = utcNow(now)
}

// utcNow makes stored instants zone independent
func utcNow(now func() time.Time) func() time.Time {
	return func() time.Time { return now().UTC() }
}

// current returns now in the configured zone
func (c *clock) current() time.Time {
	return c.now().In(c.loc)
}

// startOfDay truncates t to local midnight in its own zone
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseInstant reads a client instant in one of instantLayouts
func (c *clock) parseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.ParseInLocation(layout, value, c.loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseOptionalInstant maps an empty string to nil
func (c *clock) parseOptionalInstant(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := c.parseInstant(value)
	if err != nil {
		return nil, invalid("%s must be a valid date", field)
	}
	u := t.UTC()
	return &u, nil
}

// combineDateTime joins a YYYY-MM-DD date and an HH:MM clock in the configured zone
func (c *clock) combineDateTime(date, clockTime string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), c.loc)
	if err != nil {
		return time.Time{}, invalid("date must be in YYYY-MM-DD format")
	}
	hour, minute, ok := model.ParseClock(clockTime)
	if !ok {
		return time.Time{}, invalid("time must be in HH:MM format")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, c.loc), nil
}
