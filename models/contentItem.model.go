package models

import "gorm.io/gorm"

// Content types
const (
	ContentVideo    = "VIDEO"
	ContentLab      = "LAB"
	ContentGame     = "GAME"
	ContentDocument = "DOCUMENT"
)

// ContentItem is an atomic learning unit within a module, organized by section
type ContentItem struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ContentType     string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, LAB, GAME, DOCUMENT
	Section         string `json:"section" gorm:"default:''"`           // Section label within module
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	VideoURL        string `json:"video_url"`                    // For VIDEO type
	DocumentURL     string `json:"document_url"`                 // For DOCUMENT type
	OrderIndex      int    `json:"order_index" gorm:"default:0"` // Order within section
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}
