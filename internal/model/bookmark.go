package model

import "time"

// Bookmark is a user's saved reference to an article or a study resource,
// keyed by (resource_type, resource_id). ResourceType is a free-form tag,
// e.g. "article" or "tnpsc_material".
type Bookmark struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_resource" json:"user_id"`
	ResourceType string    `gorm:"size:64;not null;uniqueIndex:idx_user_resource" json:"resource_type"`
	ResourceID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_resource" json:"resource_id"`
	Title        string    `gorm:"size:256" json:"title"`
	CreatedAt    time.Time `json:"created_at"`
}
