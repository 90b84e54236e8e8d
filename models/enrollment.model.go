package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentPaused    = "PAUSED"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
)

// Enrollment tracks a user's enrollment in a module with progress.
// Completion counts are recomputed from content progress records, never
// incremented in place.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	ModuleID uint   `json:"module_id" gorm:"index;not null"`
	Status   string `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, PAUSED, COMPLETED, DROPPED

	TotalSections      int `json:"total_sections" gorm:"default:0"` // item count, snapshotted at enroll
	CompletedSections  int `json:"completed_sections" gorm:"default:0"`
	ProgressPercentage int `json:"progress_percentage" gorm:"default:0"`

	EnrolledAt     time.Time  `json:"enrolled_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	IsDeleted      bool       `gorm:"default:false"`
}
