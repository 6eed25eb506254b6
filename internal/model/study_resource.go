package model

import "time"

// StudyResource is static reference material for the exam-preparation module,
// tagged by subject and exam stage ("prelims", "mains").
type StudyResource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Category    string    `gorm:"size:64;index" json:"category"`
	Subject     string    `gorm:"size:64;index" json:"subject"`
	ExamStage   string    `gorm:"size:32;index" json:"exam_stage"`
	FileURL     string    `gorm:"size:512" json:"file_url"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
