package model

import "time"

// Difficulty rates how hard a module is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists difficulties in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// DefaultEstimatedHours is applied when a module is created without an estimate
const DefaultEstimatedHours = 2

// Module is a unit of study content belonging to a subject
type Module struct {
	ID             string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID         string     `gorm:"type:varchar(36);not null;index:idx_modules_user_subject" bson:"user_id" json:"user_id"`
	SubjectID      string     `gorm:"type:varchar(36);not null;index:idx_modules_user_subject" bson:"subject_id" json:"subject_id"`
	Name           string     `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Difficulty     Difficulty `gorm:"type:varchar(10);not null;default:'Medium'" bson:"difficulty" json:"difficulty"`
	EstimatedHours float64    `gorm:"not null" bson:"estimated_hours" json:"estimated_hours"`
	Completed      bool       `gorm:"not null;default:false" bson:"completed" json:"completed"`
	CompletedAt    *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`

	// Relationships
	Topics []Topic `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" bson:"topics" json:"topics"`
}

// TableName specifies the table name for Module
func (Module) TableName() string {
	return "modules"
}

// SetCompleted applies a completion change with the same transition rule as tasks
func (m *Module) SetCompleted(completed bool, now time.Time) {
	if completed && !m.Completed {
		m.CompletedAt = timePtr(now)
	}
	if !completed {
		m.CompletedAt = nil
	}
	m.Completed = completed
}

// FindTopic returns the index of the topic with the given id, or -1
func (m *Module) FindTopic(topicID string) int {
	for i := range m.Topics {
		if m.Topics[i].ID == topicID {
			return i
		}
	}
	return -1
}

// Reindex rewrites topic positions and ownership to match slice order.
// Topics without an id receive one.
func (m *Module) Reindex() {
	for i := range m.Topics {
		if m.Topics[i].ID == "" {
			m.Topics[i].ID = NewID()
		}
		m.Topics[i].Position = i
		m.Topics[i].ModuleID = m.ID
	}
}

// Topic is a concept tracked inside a module. It has no lifecycle outside its module.
type Topic struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" bson:"id" json:"id"`
	ModuleID  string     `gorm:"type:varchar(36);not null;index" bson:"-" json:"-"`
	Title     string     `gorm:"type:varchar(255);not null" bson:"title" json:"title"`
	Priority  Priority   `gorm:"type:varchar(10);not null;default:'Medium'" bson:"priority" json:"priority"`
	DueDate   *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Completed bool       `gorm:"not null;default:false" bson:"completed" json:"completed"`
	Position  int        `gorm:"not null;default:0" bson:"position" json:"position"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "module_topics"
}
