package progression

import (
	"fmt"
	"skillforge/config"
	"skillforge/database"
	"skillforge/models"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB wires the package's global database handle to a fresh
// in-memory sqlite database named after the test.
func setupTestDB(t *testing.T) {
	t.Helper()

	config.LoadConfig()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestModule(t *testing.T, difficulty string) *models.LearningModule {
	t.Helper()

	phase := models.Phase{Title: "Phase 1", IsPublished: true}
	if err := database.Database.Db.Create(&phase).Error; err != nil {
		t.Fatalf("failed to create test phase: %v", err)
	}

	module := models.LearningModule{
		PhaseID:     phase.ID,
		Title:       "Test Module",
		Difficulty:  difficulty,
		IsPublished: true,
	}
	if err := database.Database.Db.Create(&module).Error; err != nil {
		t.Fatalf("failed to create test module: %v", err)
	}
	return &module
}

func createTestContent(t *testing.T, moduleID uint, contentType string, durationMinutes int) *models.ContentItem {
	t.Helper()

	item := models.ContentItem{
		ModuleID:        moduleID,
		Title:           "Test Content",
		ContentType:     contentType,
		DurationMinutes: durationMinutes,
		IsPublished:     true,
	}
	if err := database.Database.Db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create test content: %v", err)
	}
	return &item
}

func createTestAchievement(t *testing.T, slug, category string, target, xpReward int) *models.Achievement {
	t.Helper()

	achievement := models.Achievement{
		Slug:     slug,
		Title:    "Test Achievement " + slug,
		Category: category,
		Target:   target,
		XPReward: xpReward,
		IsActive: true,
	}
	if err := database.Database.Db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create test achievement: %v", err)
	}
	return &achievement
}

func userTotalXP(t *testing.T, userID uint) int {
	t.Helper()

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return user.TotalXP
}
