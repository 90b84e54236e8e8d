package progression

import (
	"log"
	"math"
	"skillforge/database"
	"skillforge/models"
	"skillforge/utils"
	"time"

	"gorm.io/gorm"
)

// EnrollModule creates an enrollment for (user, module), snapshotting the
// module's current item count. Enrolling twice is a conflict.
func EnrollModule(userID, moduleID uint) (*models.Enrollment, error) {
	db := database.Database.Db

	var module models.LearningModule
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).First(&module).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Enrollment
	if err := db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).First(&existing).Error; err == nil {
		return nil, ErrAlreadyEnrolled
	}

	now := time.Now()
	enrollment := models.Enrollment{
		UserID:         userID,
		ModuleID:       moduleID,
		Status:         models.EnrollmentActive,
		TotalSections:  int(countModuleItems(moduleID)),
		EnrolledAt:     now,
		LastAccessedAt: now,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}

	if err := AwardXP(userID, XPForEnrollment(), "Enrolled in module: "+module.Title, models.XPRefEnrollment, module.ID); err != nil {
		log.Printf("Failed to award enrollment XP to user %d: %v", userID, err)
	}

	var enrolled int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&enrolled)
	AdvanceCategory(userID, models.CategoryEnrollment, int(enrolled))

	return &enrollment, nil
}

// RecomputeEnrollment re-derives the enrollment's completion counters from
// the live counts of module items and completed progress records. Because
// nothing is incremented, repeated or racing invocations settle on the
// same values; only the conditional flip to COMPLETED awards the one-time
// module bonus.
func RecomputeEnrollment(userID, moduleID uint) (*models.Enrollment, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	total := countModuleItems(moduleID)

	var completed int64
	db.Model(&models.ContentProgress{}).
		Where("user_id = ? AND status = ? AND content_id IN (?)",
			userID, models.ProgressCompleted,
			db.Model(&models.ContentItem{}).Select("id").Where("module_id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true)).
		Count(&completed)

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	now := time.Now()
	if err := db.Model(&enrollment).Updates(map[string]interface{}{
		"total_sections":      total,
		"completed_sections":  completed,
		"progress_percentage": percentage,
		"last_accessed_at":    now,
	}).Error; err != nil {
		return nil, err
	}
	enrollment.TotalSections = int(total)
	enrollment.CompletedSections = int(completed)
	enrollment.ProgressPercentage = percentage
	enrollment.LastAccessedAt = now

	if percentage >= 100 && total > 0 && enrollment.Status == models.EnrollmentActive {
		if _, err := completeEnrollmentOnce(&enrollment); err != nil {
			return nil, err
		}
	}

	return &enrollment, nil
}

// PauseEnrollment pauses an active enrollment
func PauseEnrollment(userID, enrollmentID uint) (*models.Enrollment, error) {
	return transitionEnrollment(userID, enrollmentID, []string{models.EnrollmentActive}, models.EnrollmentPaused)
}

// ResumeEnrollment reactivates a paused enrollment
func ResumeEnrollment(userID, enrollmentID uint) (*models.Enrollment, error) {
	return transitionEnrollment(userID, enrollmentID, []string{models.EnrollmentPaused}, models.EnrollmentActive)
}

// DropEnrollment abandons an active or paused enrollment
func DropEnrollment(userID, enrollmentID uint) (*models.Enrollment, error) {
	return transitionEnrollment(userID, enrollmentID, []string{models.EnrollmentActive, models.EnrollmentPaused}, models.EnrollmentDropped)
}

// CompleteEnrollmentAdmin force-completes an enrollment regardless of its
// percentage. It shares the conditional flip with the aggregator, so an
// override racing a recompute still awards the bonus at most once.
func CompleteEnrollmentAdmin(enrollmentID uint) (*models.Enrollment, bool, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	flipped, err := completeEnrollmentOnce(&enrollment)
	if err != nil {
		return nil, false, err
	}

	return &enrollment, flipped, nil
}

// Unenroll soft-deletes the enrollment
func Unenroll(userID, enrollmentID uint) error {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	return db.Model(&enrollment).Update("is_deleted", true).Error
}

// completeEnrollmentOnce flips the enrollment to COMPLETED and performs the
// one-time module bonus. The flip is a single conditional write; of any
// number of concurrent callers exactly one sees RowsAffected = 1 and
// awards the bonus.
func completeEnrollmentOnce(enrollment *models.Enrollment) (bool, error) {
	db := database.Database.Db
	now := time.Now()

	res := db.Model(&models.Enrollment{}).
		Where("id = ? AND status <> ?", enrollment.ID, models.EnrollmentCompleted).
		Updates(map[string]interface{}{
			"status":              models.EnrollmentCompleted,
			"progress_percentage": 100,
			"completed_at":        now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		enrollment.Status = models.EnrollmentCompleted
		return false, nil
	}

	enrollment.Status = models.EnrollmentCompleted
	enrollment.ProgressPercentage = 100
	enrollment.CompletedAt = &now

	var module models.LearningModule
	if err := db.Where("id = ?", enrollment.ModuleID).First(&module).Error; err != nil {
		return true, nil
	}

	if err := AwardXP(enrollment.UserID, XPForModuleCompletion(module.Difficulty), "Module completed: "+module.Title, models.XPRefModule, module.ID); err != nil {
		log.Printf("Failed to award module XP to user %d: %v", enrollment.UserID, err)
	}

	var completedModules int64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND status = ? AND is_deleted = ?", enrollment.UserID, models.EnrollmentCompleted, false).
		Count(&completedModules)
	AdvanceCategory(enrollment.UserID, models.CategoryModule, int(completedModules))

	utils.NotifyEvent("module.completed", map[string]interface{}{
		"user_id":   enrollment.UserID,
		"module_id": enrollment.ModuleID,
	})

	return true, nil
}

func transitionEnrollment(userID, enrollmentID uint, validFrom []string, to string) (*models.Enrollment, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	allowed := false
	for _, s := range validFrom {
		if enrollment.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidTransition
	}

	if err := db.Model(&enrollment).Update("status", to).Error; err != nil {
		return nil, err
	}
	enrollment.Status = to

	return &enrollment, nil
}

func countModuleItems(moduleID uint) int64 {
	var total int64
	database.Database.Db.Model(&models.ContentItem{}).
		Where("module_id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).
		Count(&total)
	return total
}
