package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is a write-once record of a notable platform event shown on the
// admin dashboard. Rows are never updated or deleted.
type ActivityLog struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ActivityType string            `gorm:"size:50;not null;index" json:"activity_type"`
	Title        string            `gorm:"size:200;not null" json:"title"`
	Message      string            `gorm:"type:text;not null" json:"message"`
	UserID       *uint             `gorm:"index" json:"user_id"`
	RelatedID    *uint             `json:"related_id"`
	Metadata     datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt    time.Time         `json:"created_at"`
}
