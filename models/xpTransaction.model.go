package models

import "gorm.io/gorm"

// XP transaction reference types
const (
	XPRefContent     = "CONTENT"
	XPRefModule      = "MODULE"
	XPRefAchievement = "ACHIEVEMENT"
	XPRefEnrollment  = "ENROLLMENT"
	XPRefAdmin       = "ADMIN"
)

// XPTransaction is an append-only audit record of every XP credit
type XPTransaction struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	Amount  int    `json:"amount" gorm:"not null"`
	Reason  string `json:"reason"`
	RefType string `json:"ref_type"` // CONTENT, MODULE, ACHIEVEMENT, ENROLLMENT, ADMIN
	RefID   uint   `json:"ref_id"`
}
