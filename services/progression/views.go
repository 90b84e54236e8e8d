package progression

import (
	"skillforge/database"
	"skillforge/models"

	"gorm.io/gorm"
)

// OverallProgress is the cross-enrollment projection for one user. It is
// built from progress and enrollment records at read time, never stored.
type OverallProgress struct {
	TotalXP           int                 `json:"total_xp"`
	Level             int                 `json:"level"`
	CurrentStreak     int                 `json:"current_streak"`
	LongestStreak     int                 `json:"longest_streak"`
	TotalEnrollments  int                 `json:"total_enrollments"`
	CompletedModules  int                 `json:"completed_modules"`
	CompletedContents int                 `json:"completed_contents"`
	Enrollments       []models.Enrollment `json:"enrollments"`
}

// ContentItemProgress pairs a content item with the user's progress on it
type ContentItemProgress struct {
	models.ContentItem
	Status             string `json:"status"`
	ProgressPercentage int    `json:"progress_percentage"`
	Score              *int   `json:"score,omitempty"`
	MaxScore           *int   `json:"max_score,omitempty"`
	TimeSpent          int    `json:"time_spent"`
}

// ModuleProgress is the per-item breakdown of one module for one user
type ModuleProgress struct {
	Module     models.LearningModule `json:"module"`
	Enrollment *models.Enrollment    `json:"enrollment,omitempty"`
	Items      []ContentItemProgress `json:"items"`
}

// UserOverallProgress aggregates a user's progress across all enrollments
func UserOverallProgress(userID uint) (*OverallProgress, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	completedModules := 0
	for _, e := range enrollments {
		if e.Status == models.EnrollmentCompleted {
			completedModules++
		}
	}

	var completedContents int64
	db.Model(&models.ContentProgress{}).
		Where("user_id = ? AND status = ?", userID, models.ProgressCompleted).
		Count(&completedContents)

	return &OverallProgress{
		TotalXP:           user.TotalXP,
		Level:             LevelForXP(user.TotalXP),
		CurrentStreak:     user.CurrentStreak,
		LongestStreak:     user.LongestStreak,
		TotalEnrollments:  len(enrollments),
		CompletedModules:  completedModules,
		CompletedContents: int(completedContents),
		Enrollments:       enrollments,
	}, nil
}

// UserModuleProgress returns the per-item breakdown for one module,
// synthesizing not-started rows for untouched items
func UserModuleProgress(userID, moduleID uint) (*ModuleProgress, error) {
	db := database.Database.Db

	var module models.LearningModule
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).First(&module).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var items []models.ContentItem
	if err := db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).
		Order("section asc, order_index asc").Find(&items).Error; err != nil {
		return nil, err
	}

	var records []models.ContentProgress
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	byContent := make(map[uint]models.ContentProgress, len(records))
	for _, r := range records {
		byContent[r.ContentID] = r
	}

	breakdown := make([]ContentItemProgress, len(items))
	for i, item := range items {
		breakdown[i] = ContentItemProgress{
			ContentItem: item,
			Status:      models.ProgressNotStarted,
		}
		if rec, ok := byContent[item.ID]; ok {
			breakdown[i].Status = rec.Status
			breakdown[i].ProgressPercentage = rec.ProgressPercentage
			breakdown[i].Score = rec.Score
			breakdown[i].MaxScore = rec.MaxScore
			breakdown[i].TimeSpent = rec.TimeSpent
		}
	}

	result := &ModuleProgress{
		Module: module,
		Items:  breakdown,
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).First(&enrollment).Error; err == nil {
		result.Enrollment = &enrollment
	}

	return result, nil
}
