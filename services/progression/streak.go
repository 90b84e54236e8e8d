package progression

import (
	"skillforge/database"
	"skillforge/models"
	"time"

	"gorm.io/gorm"
)

// Streak display statuses
const (
	StreakNone        = "NONE"
	StreakActiveToday = "ACTIVE_TODAY"
	StreakAtRisk      = "AT_RISK"
	StreakBroken      = "BROKEN"
)

// TouchStreak advances the user's daily streak for a qualifying activity.
// Safe to call any number of times per day; only the first call of a
// calendar day changes the counters.
func TouchStreak(userID uint) (*models.User, error) {
	return touchStreakAt(userID, time.Now().UTC())
}

func touchStreakAt(userID uint, now time.Time) (*models.User, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	today := truncateToDay(now)

	if user.LastActivityDate != nil {
		gap := dayGap(*user.LastActivityDate, today)
		switch {
		case gap <= 0:
			// Already counted today
			return &user, nil
		case gap == 1:
			user.CurrentStreak++
		default:
			user.CurrentStreak = 1
		}
	} else {
		user.CurrentStreak = 1
	}

	if user.CurrentStreak > user.LongestStreak {
		user.LongestStreak = user.CurrentStreak
	}
	user.LastActivityDate = &today

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"current_streak":     user.CurrentStreak,
		"longest_streak":     user.LongestStreak,
		"last_activity_date": today,
	}).Error; err != nil {
		return nil, err
	}

	AdvanceCategory(userID, models.CategoryStreak, user.CurrentStreak)

	return &user, nil
}

// StreakStatus derives a display status from the gap between the last
// activity day and today, without mutating state.
func StreakStatus(userID uint) (string, *models.User, error) {
	return streakStatusAt(userID, time.Now().UTC())
}

func streakStatusAt(userID uint, now time.Time) (string, *models.User, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	if user.LastActivityDate == nil {
		return StreakNone, &user, nil
	}

	switch dayGap(*user.LastActivityDate, truncateToDay(now)) {
	case 0:
		return StreakActiveToday, &user, nil
	case 1:
		return StreakAtRisk, &user, nil
	default:
		return StreakBroken, &user, nil
	}
}

// StreakLeaderboard ranks users by their current streak
func StreakLeaderboard(limit int) ([]LeaderboardEntry, error) {
	db := database.Database.Db

	var entries []LeaderboardEntry
	err := db.Model(&models.User{}).
		Select("id as user_id, name, current_streak as score").
		Where("is_deleted = ? AND current_streak > 0", false).
		Order("current_streak desc, longest_streak desc").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayGap returns whole calendar days between two UTC midnights
func dayGap(from, to time.Time) int {
	return int(truncateToDay(to).Sub(truncateToDay(from)).Hours() / 24)
}
