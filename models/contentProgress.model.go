package models

import (
	"time"

	"gorm.io/gorm"
)

// Progress record statuses
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// ContentProgress tracks a user's progress on a single content item.
// Exactly one record exists per (user, content item); it is created lazily
// on the first start or complete call and never deleted.
type ContentProgress struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"index:idx_user_content,unique;not null"`
	ContentID uint `json:"content_id" gorm:"index:idx_user_content,unique;not null"`

	ContentType        string     `json:"content_type"` // denormalized from the item at creation
	Status             string     `json:"status" gorm:"default:'NOT_STARTED'"` // NOT_STARTED, IN_PROGRESS, COMPLETED
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"` // 0-100
	Score              *int       `json:"score"`
	MaxScore           *int       `json:"max_score"`
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	TimeSpent          int        `json:"time_spent" gorm:"default:0"` // minutes, accumulator
}
