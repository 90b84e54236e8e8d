package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate request statuses
const (
	CertificatePending  = "PENDING"
	CertificateApproved = "APPROVED"
	CertificateRejected = "REJECTED"
)

// CertificateRequest is a user's request for a module completion certificate
type CertificateRequest struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	ModuleID     uint      `json:"module_id" gorm:"index;not null"`
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null"`
	Status       string    `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	RequestedAt  time.Time `json:"requested_at"`
	ReviewedBy   uint      `json:"reviewed_by"`
	Notes        string    `json:"notes"`
	IsDeleted    bool      `gorm:"default:false"`
}

// Certificate is an issued module completion certificate
type Certificate struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	ModuleID      uint      `json:"module_id" gorm:"index;not null"`
	CertificateNo string    `json:"certificate_no" gorm:"uniqueIndex;not null"`
	IssuedAt      time.Time `json:"issued_at"`
	IssuedBy      uint      `json:"issued_by"`
	IsDeleted     bool      `gorm:"default:false"`
}
