package progression

import (
	"encoding/json"
	"log"
	"skillforge/database"
	"skillforge/models"
	"skillforge/utils"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AchievementView joins a definition with one user's progress toward it
type AchievementView struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Current     int        `json:"current"`
	Target      int        `json:"target"`
	Percentage  int        `json:"percentage"`
	XPReward    int        `json:"xp_reward"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// LeaderboardEntry is one row of a ranked user listing
type LeaderboardEntry struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// AdvanceAchievement moves a user's progress on one achievement to an
// absolute count. Callers always pass the current total on the metric,
// never a delta, so repeated calls with the same or a smaller value are
// no-ops. Returns whether this call newly completed the achievement.
func AdvanceAchievement(userID uint, slug string, current int) (bool, error) {
	db := database.Database.Db

	var def models.Achievement
	if err := db.Where("slug = ? AND is_active = ? AND is_deleted = ?", slug, true, false).First(&def).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrNotFound
		}
		return false, err
	}

	ua, err := loadOrCreateUserAchievement(userID, &def)
	if err != nil {
		return false, err
	}

	clamped := current
	if clamped > def.Target {
		clamped = def.Target
	}

	// Monotonic: the guard keeps a racing smaller write from rolling progress back.
	if clamped > ua.Current {
		if err := db.Model(&models.UserAchievement{}).
			Where("id = ? AND current < ?", ua.ID, clamped).
			Update("current", clamped).Error; err != nil {
			return false, err
		}
		ua.Current = clamped
	}

	if ua.Current < def.Target || ua.IsCompleted {
		return false, nil
	}

	// One-time completion: flag flip and reward snapshot happen in a single
	// conditional write; only the winner of a race awards the XP.
	now := time.Now()
	rewards, _ := json.Marshal(map[string]int{"xp": def.XPReward})
	res := db.Model(&models.UserAchievement{}).
		Where("id = ? AND is_completed = ?", ua.ID, false).
		Updates(map[string]interface{}{
			"is_completed":   true,
			"completed_at":   now,
			"earned_rewards": datatypes.JSON(rewards),
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if err := AwardXP(userID, def.XPReward, "Achievement unlocked: "+def.Title, models.XPRefAchievement, def.ID); err != nil {
		log.Printf("Failed to award achievement XP to user %d: %v", userID, err)
	}

	notifyAchievementUnlocked(userID, &def)

	return true, nil
}

// AdvanceCategory fans an absolute count out to every active achievement
// tracking the given metric.
func AdvanceCategory(userID uint, category string, count int) {
	db := database.Database.Db

	var defs []models.Achievement
	if err := db.Where("category = ? AND is_active = ? AND is_deleted = ?", category, true, false).Find(&defs).Error; err != nil {
		log.Printf("Failed to load %s achievements: %v", category, err)
		return
	}

	for _, def := range defs {
		if _, err := AdvanceAchievement(userID, def.Slug, count); err != nil {
			log.Printf("Failed to advance achievement %s for user %d: %v", def.Slug, userID, err)
		}
	}
}

// ListUserAchievements returns every active definition joined with the
// user's progress, synthesizing a zero row for untouched achievements.
func ListUserAchievements(userID uint) ([]AchievementView, error) {
	db := database.Database.Db

	var defs []models.Achievement
	if err := db.Where("is_active = ? AND is_deleted = ?", true, false).Order("category asc, target asc").Find(&defs).Error; err != nil {
		return nil, err
	}

	var rows []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	byDef := make(map[uint]models.UserAchievement, len(rows))
	for _, r := range rows {
		byDef[r.AchievementID] = r
	}

	views := make([]AchievementView, len(defs))
	for i, def := range defs {
		view := AchievementView{
			Slug:        def.Slug,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			Target:      def.Target,
			XPReward:    def.XPReward,
		}
		if ua, ok := byDef[def.ID]; ok {
			view.Current = ua.Current
			view.IsCompleted = ua.IsCompleted
			view.CompletedAt = ua.CompletedAt
		}
		if def.Target > 0 {
			view.Percentage = view.Current * 100 / def.Target
		}
		views[i] = view
	}

	return views, nil
}

// AchievementLeaderboard ranks users by XP earned from completed achievements
func AchievementLeaderboard(limit int) ([]LeaderboardEntry, error) {
	db := database.Database.Db

	var entries []LeaderboardEntry
	err := db.Table("user_achievements").
		Select("user_achievements.user_id as user_id, users.name as name, SUM(achievements.xp_reward) as score").
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Joins("JOIN users ON users.id = user_achievements.user_id").
		Where("user_achievements.is_completed = ? AND users.is_deleted = ?", true, false).
		Group("user_achievements.user_id, users.name").
		Order("score desc").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func loadOrCreateUserAchievement(userID uint, def *models.Achievement) (*models.UserAchievement, error) {
	db := database.Database.Db

	var ua models.UserAchievement
	err := db.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&ua).Error
	if err == nil {
		return &ua, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	ua = models.UserAchievement{
		UserID:        userID,
		AchievementID: def.ID,
		Target:        def.Target,
	}
	if err := db.Create(&ua).Error; err != nil {
		// Unique index lost a concurrent create; use the winner's row.
		if ferr := db.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&ua).Error; ferr != nil {
			return nil, err
		}
	}
	return &ua, nil
}

func notifyAchievementUnlocked(userID uint, def *models.Achievement) {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return
	}

	utils.NotifyEvent("achievement.unlocked", map[string]interface{}{
		"user_id":   userID,
		"slug":      def.Slug,
		"xp_reward": def.XPReward,
	})

	if err := utils.SendAchievementEmail(user.Name, user.Email, def.Title, def.XPReward); err != nil {
		log.Printf("Failed to send achievement email to user %d: %v", userID, err)
	}
}
