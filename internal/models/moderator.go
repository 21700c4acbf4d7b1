package models

import "time"

// Moderator is an administrative account with content-moderation privileges,
// distinct from end-user accounts. Password always holds a bcrypt hash and is
// never serialized.
type Moderator struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	AssignedModel string    `gorm:"size:255" json:"assigned_model"`
	IsModerator   bool      `gorm:"default:true" json:"is_moderator"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
