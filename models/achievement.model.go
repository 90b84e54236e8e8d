package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Achievement categories. Each category is a countable metric; the user's
// absolute count on that metric drives progress.
const (
	CategoryVideo      = "VIDEO"      // videos watched
	CategoryLab        = "LAB"        // labs completed
	CategoryGame       = "GAME"       // games completed
	CategoryDocument   = "DOCUMENT"   // documents read
	CategoryContent    = "CONTENT"    // any content completed
	CategoryModule     = "MODULE"     // modules completed
	CategoryEnrollment = "ENROLLMENT" // modules enrolled
	CategoryStreak     = "STREAK"     // current daily streak
)

// Achievement is a milestone definition with a numeric target on a metric
type Achievement struct {
	gorm.Model
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"index;not null"`
	Target      int    `json:"target" gorm:"not null"`
	XPReward    int    `json:"xp_reward" gorm:"default:0"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}

// UserAchievement tracks a user's progress toward one achievement.
// IsCompleted flips false to true exactly once and is irreversible.
type UserAchievement struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"index:idx_user_achievement,unique;not null"`
	AchievementID uint `json:"achievement_id" gorm:"index:idx_user_achievement,unique;not null"`

	Current       int            `json:"current" gorm:"default:0"` // clamped to Target
	Target        int            `json:"target" gorm:"not null"`
	IsCompleted   bool           `json:"is_completed" gorm:"default:false"`
	CompletedAt   *time.Time     `json:"completed_at"`
	EarnedRewards datatypes.JSON `json:"earned_rewards"` // e.g. {"xp": 100}
}
