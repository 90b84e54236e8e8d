package models

import "gorm.io/gorm"

// Phase groups learning modules into a curriculum stage
type Phase struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Phase order in curriculum
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
