package model

import "time"

// DefaultSubjectColor is applied when a subject is created without a color
const DefaultSubjectColor = "#3B82F6"

// Subject groups study modules. Its module counters are derived from the
// module collection on read and never persisted.
type Subject struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID           string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_subjects_user_color" bson:"user_id" json:"user_id"`
	Name             string    `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Color            string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_subjects_user_color" bson:"color" json:"color"`
	TotalModules     int64     `gorm:"-" bson:"-" json:"total_modules"`
	CompletedModules int64     `gorm:"-" bson:"-" json:"completed_modules"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// TableName specifies the table name for Subject
func (Subject) TableName() string {
	return "subjects"
}

// ModuleCounts is the computed module tally of one subject
type ModuleCounts struct {
	Total     int64 `json:"total_modules"`
	Completed int64 `json:"completed_modules"`
}

// ApplyCounts copies the computed tally onto the subject
func (s *Subject) ApplyCounts(counts ModuleCounts) {
	s.TotalModules = counts.Total
	s.CompletedModules = counts.Completed
}
