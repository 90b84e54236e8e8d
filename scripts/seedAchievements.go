package main

import (
	"log"
	"skillforge/config"
	"skillforge/database"
	"skillforge/models"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	achievements := []models.Achievement{
		{Slug: "first-steps", Title: "First Steps", Description: "Complete your first module", Category: models.CategoryModule, Target: 1, XPReward: 100, IsActive: true},
		{Slug: "module-master", Title: "Module Master", Description: "Complete 10 modules", Category: models.CategoryModule, Target: 10, XPReward: 500, IsActive: true},
		{Slug: "explorer", Title: "Explorer", Description: "Enroll in 5 modules", Category: models.CategoryEnrollment, Target: 5, XPReward: 50, IsActive: true},
		{Slug: "binge-watcher", Title: "Binge Watcher", Description: "Watch 25 videos", Category: models.CategoryVideo, Target: 25, XPReward: 150, IsActive: true},
		{Slug: "lab-rat", Title: "Lab Rat", Description: "Complete 10 labs", Category: models.CategoryLab, Target: 10, XPReward: 200, IsActive: true},
		{Slug: "game-on", Title: "Game On", Description: "Complete 10 games", Category: models.CategoryGame, Target: 10, XPReward: 150, IsActive: true},
		{Slug: "bookworm", Title: "Bookworm", Description: "Read 20 documents", Category: models.CategoryDocument, Target: 20, XPReward: 100, IsActive: true},
		{Slug: "getting-started", Title: "Getting Started", Description: "Complete 10 content items", Category: models.CategoryContent, Target: 10, XPReward: 50, IsActive: true},
		{Slug: "halfway-hero", Title: "Halfway Hero", Description: "Complete 50 content items", Category: models.CategoryContent, Target: 50, XPReward: 250, IsActive: true},
		{Slug: "centurion", Title: "Centurion", Description: "Complete 100 content items", Category: models.CategoryContent, Target: 100, XPReward: 500, IsActive: true},
		{Slug: "week-warrior", Title: "Week Warrior", Description: "Keep a 7 day streak", Category: models.CategoryStreak, Target: 7, XPReward: 100, IsActive: true},
		{Slug: "monthly-machine", Title: "Monthly Machine", Description: "Keep a 30 day streak", Category: models.CategoryStreak, Target: 30, XPReward: 500, IsActive: true},
	}

	inserted := 0
	skipped := 0
	for _, achievement := range achievements {
		var existing models.Achievement
		if err := database.Database.Db.Where("slug = ?", achievement.Slug).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		if err := database.Database.Db.Create(&achievement).Error; err != nil {
			log.Printf("Failed to seed achievement %s: %v", achievement.Slug, err)
			continue
		}
		inserted++
	}

	log.Printf("Achievement seeding complete: %d inserted, %d skipped", inserted, skipped)
}
