package progression

import (
	"log"
	"skillforge/config"
	"skillforge/database"
	"skillforge/models"
	"skillforge/utils"
	"time"

	"gorm.io/gorm"
)

// StartContent loads or lazily creates the progress record for (user, content)
// and marks it in progress. Duplicate start signals from repeated content
// loads are reported as already started and leave the record untouched.
func StartContent(userID, contentID uint) (*models.ContentProgress, bool, error) {
	content, err := loadContent(contentID)
	if err != nil {
		return nil, false, err
	}

	rec, err := loadOrCreateProgress(userID, content)
	if err != nil {
		return nil, false, err
	}

	if rec.Status != models.ProgressNotStarted {
		return rec, true, nil
	}

	now := time.Now()
	rec.Status = models.ProgressInProgress
	rec.ProgressPercentage = 1 // non-zero sentinel: opened, as opposed to never opened
	rec.StartedAt = &now
	if err := database.Database.Db.Save(rec).Error; err != nil {
		return nil, false, err
	}

	return rec, false, nil
}

// UpdateContentProgress persists a new progress percentage. Video content
// reaching the watch threshold is forced to 100 and completed. Updates on
// an already-completed record only accumulate time spent; they never
// re-trigger rewards.
func UpdateContentProgress(userID, contentID uint, percentage, timeSpent int) (*models.ContentProgress, error) {
	if percentage < 0 || percentage > 100 {
		return nil, ErrPercentageRange
	}

	content, err := loadContent(contentID)
	if err != nil {
		return nil, err
	}

	rec, err := loadOrCreateProgress(userID, content)
	if err != nil {
		return nil, err
	}

	db := database.Database.Db

	if timeSpent > 0 {
		rec.TimeSpent += timeSpent
	}

	if rec.Status == models.ProgressCompleted {
		if err := db.Model(rec).Update("time_spent", rec.TimeSpent).Error; err != nil {
			return nil, err
		}
		return rec, nil
	}

	// Watched enough to count for streaming content
	if content.ContentType == models.ContentVideo && percentage >= config.AppConfig.VideoCompleteThreshold {
		percentage = 100
	}

	if percentage == 100 {
		if err := completeRecord(rec, content, nil, nil); err != nil {
			return nil, err
		}
		return rec, nil
	}

	rec.ProgressPercentage = percentage
	if percentage >= 1 {
		rec.Status = models.ProgressInProgress
		if rec.StartedAt == nil {
			now := time.Now()
			rec.StartedAt = &now
		}
	}
	if err := db.Save(rec).Error; err != nil {
		return nil, err
	}

	return rec, nil
}

// CompleteContent explicitly completes a content item, used by labs, games
// and documents instead of percentage streaming. A client may retry the
// call; every side effect tolerates re-invocation without double-crediting.
func CompleteContent(userID, contentID uint, score, maxScore *int) (*models.ContentProgress, error) {
	if score != nil && maxScore != nil && *score > *maxScore {
		return nil, ErrScoreRange
	}

	content, err := loadContent(contentID)
	if err != nil {
		return nil, err
	}

	rec, err := loadOrCreateProgress(userID, content)
	if err != nil {
		return nil, err
	}

	if err := completeRecord(rec, content, score, maxScore); err != nil {
		return nil, err
	}

	return rec, nil
}

// GetContentProgress fetches the record, answering a synthesized
// not-started row (ID zero) when the user never touched the item.
func GetContentProgress(userID, contentID uint) (*models.ContentProgress, error) {
	content, err := loadContent(contentID)
	if err != nil {
		return nil, err
	}

	var rec models.ContentProgress
	err = database.Database.Db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return &models.ContentProgress{
			UserID:      userID,
			ContentID:   contentID,
			ContentType: content.ContentType,
			Status:      models.ProgressNotStarted,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// completeRecord drives the not-completed to completed edge and the four
// completion side effects. The edge is detected by a conditional UPDATE so
// that of any number of racing or repeated calls, exactly one awards the
// content XP. The remaining side effects recompute from authoritative
// counts and are idempotent by construction.
func completeRecord(rec *models.ContentProgress, content *models.ContentItem, score, maxScore *int) error {
	db := database.Database.Db
	now := time.Now()

	updates := map[string]interface{}{
		"status":              models.ProgressCompleted,
		"progress_percentage": 100,
		"completed_at":        now,
		"time_spent":          rec.TimeSpent,
	}
	if rec.StartedAt == nil {
		updates["started_at"] = now
		rec.StartedAt = &now
	}
	if score != nil {
		updates["score"] = *score
	}
	if maxScore != nil {
		updates["max_score"] = *maxScore
	}

	res := db.Model(&models.ContentProgress{}).
		Where("id = ? AND status <> ?", rec.ID, models.ProgressCompleted).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	firstCompletion := res.RowsAffected == 1

	if !firstCompletion {
		// Repeated call: keep the original completion timestamp, but let a
		// retry carry a score the first call lacked.
		retryUpdates := map[string]interface{}{"time_spent": rec.TimeSpent}
		if score != nil {
			retryUpdates["score"] = *score
		}
		if maxScore != nil {
			retryUpdates["max_score"] = *maxScore
		}
		if err := db.Model(&models.ContentProgress{}).Where("id = ?", rec.ID).Updates(retryUpdates).Error; err != nil {
			return err
		}
		if err := db.Where("id = ?", rec.ID).First(rec).Error; err != nil {
			return err
		}
	} else {
		rec.Status = models.ProgressCompleted
		rec.ProgressPercentage = 100
		rec.CompletedAt = &now
		rec.Score = score
		rec.MaxScore = maxScore

		var module models.LearningModule
		difficulty := models.DifficultyBeginner
		if err := db.Where("id = ?", content.ModuleID).First(&module).Error; err == nil {
			difficulty = module.Difficulty
		}

		amount := XPForContent(content.ContentType, difficulty, content.DurationMinutes)
		if err := AwardXP(rec.UserID, amount, "Content completed: "+content.Title, models.XPRefContent, content.ID); err != nil {
			log.Printf("Failed to award content XP to user %d: %v", rec.UserID, err)
		}

		utils.NotifyEvent("content.completed", map[string]interface{}{
			"user_id":      rec.UserID,
			"content_id":   content.ID,
			"content_type": content.ContentType,
			"xp":           amount,
		})
	}

	advanceContentAchievements(rec.UserID, content.ContentType)

	if _, err := RecomputeEnrollment(rec.UserID, content.ModuleID); err != nil && err != ErrNotFound {
		log.Printf("Failed to recompute enrollment for user %d module %d: %v", rec.UserID, content.ModuleID, err)
	}

	if _, err := TouchStreak(rec.UserID); err != nil {
		log.Printf("Failed to touch streak for user %d: %v", rec.UserID, err)
	}

	return nil
}

// advanceContentAchievements feeds achievement counters from the live count
// of completed records, so duplicate completions cannot over-advance them.
func advanceContentAchievements(userID uint, contentType string) {
	db := database.Database.Db

	var ofType int64
	db.Model(&models.ContentProgress{}).
		Where("user_id = ? AND status = ? AND content_type = ?", userID, models.ProgressCompleted, contentType).
		Count(&ofType)
	AdvanceCategory(userID, contentType, int(ofType))

	var total int64
	db.Model(&models.ContentProgress{}).
		Where("user_id = ? AND status = ?", userID, models.ProgressCompleted).
		Count(&total)
	AdvanceCategory(userID, models.CategoryContent, int(total))
}

func loadContent(contentID uint) (*models.ContentItem, error) {
	var content models.ContentItem
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_published = ?", contentID, false, true).
		First(&content).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func loadOrCreateProgress(userID uint, content *models.ContentItem) (*models.ContentProgress, error) {
	db := database.Database.Db

	var rec models.ContentProgress
	err := db.Where("user_id = ? AND content_id = ?", userID, content.ID).First(&rec).Error
	if err == nil {
		return &rec, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	rec = models.ContentProgress{
		UserID:      userID,
		ContentID:   content.ID,
		ContentType: content.ContentType,
		Status:      models.ProgressNotStarted,
	}
	if err := db.Create(&rec).Error; err != nil {
		// Unique index lost a concurrent create; use the winner's row.
		if ferr := db.Where("user_id = ? AND content_id = ?", userID, content.ID).First(&rec).Error; ferr != nil {
			return nil, err
		}
	}
	return &rec, nil
}
