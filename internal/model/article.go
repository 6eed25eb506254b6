package model

import "time"

type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:512;not null" json:"title"`
	URL         string    `gorm:"size:512;not null;uniqueIndex" json:"url"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"size:64;index" json:"category"`
	Source      string    `gorm:"size:128" json:"source"`
	ImageURL    string    `gorm:"size:512" json:"image_url,omitempty"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}
