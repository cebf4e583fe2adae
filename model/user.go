package model

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account known to the planner
type User struct {
	ID           string       `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Email        string       `gorm:"type:varchar(320);uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string       `gorm:"type:text" bson:"password_hash,omitempty" json:"-"` // Managed by the identity provider, never exposed
	Role         string       `gorm:"type:varchar(20);not null;default:'user'" bson:"role" json:"role"`
	Settings     UserSettings `gorm:"serializer:json;type:text" bson:"settings" json:"settings"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSettings holds study preferences
type UserSettings struct {
	StudyHoursPerDay    float64           `bson:"study_hours_per_day" json:"study_hours_per_day"`
	PreferredStudyTimes []string          `bson:"preferred_study_times" json:"preferred_study_times"`
	DifficultyWeights   DifficultyWeights `bson:"difficulty_weights" json:"difficulty_weights"`
	DailyGoalHours      float64           `bson:"daily_goal_hours" json:"daily_goal_hours"`
}

// DifficultyWeights scales estimated time per module difficulty
type DifficultyWeights struct {
	Easy   float64 `bson:"easy" json:"easy"`
	Medium float64 `bson:"medium" json:"medium"`
	Hard   float64 `bson:"hard" json:"hard"`
}

// DefaultUserSettings returns the settings a new account starts with
func DefaultUserSettings() UserSettings {
	return UserSettings{
		StudyHoursPerDay:    2,
		PreferredStudyTimes: []string{},
		DifficultyWeights:   DifficultyWeights{Easy: 1, Medium: 1, Hard: 1},
		DailyGoalHours:      4,
	}
}

// NormalizeEmail lower-cases and trims an address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
