package model

import (
	"time"

	"gorm.io/datatypes"
)

// AdminAuditLog represents audit trail for admin actions
type AdminAuditLog struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	AdminID     string         `gorm:"type:varchar(36);not null;index" bson:"admin_id" json:"admin_id"`
	Action      string         `gorm:"type:varchar(100);not null" bson:"action" json:"action"` // e.g., "user_delete", "user_update"
	Resource    string         `gorm:"type:varchar(100)" bson:"resource" json:"resource"`
	ResourceID  string         `gorm:"type:varchar(36)" bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	OldValue    datatypes.JSON `bson:"old_value,omitempty" json:"old_value,omitempty"`
	NewValue    datatypes.JSON `bson:"new_value,omitempty" json:"new_value,omitempty"`
	IPAddress   string         `gorm:"type:varchar(45)" bson:"ip_address" json:"ip_address"`
	UserAgent   string         `gorm:"type:text" bson:"user_agent" json:"user_agent"`
	Description string         `gorm:"type:text" bson:"description" json:"description"`
	CreatedAt   time.Time      `gorm:"index" bson:"created_at" json:"created_at"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
