package models

import "gorm.io/gorm"

// Module difficulty levels
const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
)

// LearningModule is a collection of content items within a phase
type LearningModule struct {
	gorm.Model
	PhaseID     uint   `json:"phase_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	OrderIndex  int    `json:"order_index" gorm:"default:0"`         // Module order in phase
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
