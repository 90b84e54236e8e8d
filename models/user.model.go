package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string `gorm:"default:''"`
	Name         string `gorm:"default:''"`
	Email        string `gorm:"unique;not null"`
	Role         string `gorm:"default:'USER'"` // USER, ADMIN
	Password     string `gorm:"not null"`

	// Reward ledger. TotalXP is only written through the stats ledger;
	// level is derived from it, never stored.
	TotalXP int `json:"total_xp" gorm:"default:0"`

	// Daily activity streak. LastActivityDate holds a UTC midnight, date granularity.
	CurrentStreak    int        `json:"current_streak" gorm:"default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"last_activity_date"`

	LastLogin time.Time `gorm:"default:NULL"`
	IsDeleted bool      `gorm:"default:false"`
}
