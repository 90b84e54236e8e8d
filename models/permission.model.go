package models

import "gorm.io/gorm"

// Permission grants a user a named capability, checked by middleware
type Permission struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	Role       string `json:"role"`
	Permission string `json:"permission" gorm:"not null"`
	IsDeleted  bool   `gorm:"default:false"`
}
