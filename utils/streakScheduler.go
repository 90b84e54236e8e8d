package utils

import (
	"log"
	"skillforge/config"
	"skillforge/database"
	"skillforge/models"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STREAK-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartStreakScheduler runs the daily streak reminder job. The engine never
// mutates streaks in the background; this job only sends reminder emails.
func StartStreakScheduler() {
	c := cron.New()

	// Evening UTC, when today's activity window is closing
	if _, err := c.AddFunc("0 18 * * *", remindAtRiskStreaks); err != nil {
		log.Fatalf("Failed to schedule streak reminder job: %v", err)
	}

	c.Start()
	logScheduler("Streak reminder scheduler started")
}

// remindAtRiskStreaks mails every user whose last activity was yesterday
// and whose streak is long enough to be worth protecting
func remindAtRiskStreaks() {
	db := database.Database.Db
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	var users []models.User
	if err := db.Where(
		"is_deleted = ? AND current_streak >= ? AND last_activity_date >= ? AND last_activity_date < ?",
		false, config.AppConfig.StreakReminderMinDays, yesterdayStart, todayStart,
	).Find(&users).Error; err != nil {
		logScheduler("Error fetching at-risk users: " + err.Error())
		return
	}

	for _, user := range users {
		if err := SendStreakReminderEmail(user.Name, user.Email, user.CurrentStreak); err != nil {
			logScheduler("Failed to remind user " + user.Email + ": " + err.Error())
		}
	}

	logScheduler("Processed streak reminders")
}
