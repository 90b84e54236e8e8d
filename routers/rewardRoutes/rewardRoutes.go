package rewardRoutes

import (
	achievementControllers "skillforge/controllers/achievement"
	streakControllers "skillforge/controllers/streak"
	"skillforge/middleware"
	validators "skillforge/validators/achievement"

	"github.com/gofiber/fiber/v2"
)

// SetupRewardRoutes sets up achievement and streak routes
func SetupRewardRoutes(app *fiber.App) {
	achievementGroup := app.Group("/achievements")

	achievementGroup.Get("/", middleware.JWTMiddleware, achievementControllers.GetUserAchievements)
	achievementGroup.Get("/leaderboard", middleware.JWTMiddleware, achievementControllers.GetAchievementLeaderboard)

	streakGroup := app.Group("/streaks")

	streakGroup.Get("/", middleware.JWTMiddleware, streakControllers.GetStreak)
	streakGroup.Get("/leaderboard", middleware.JWTMiddleware, streakControllers.GetStreakLeaderboard)

	// Admin achievement management
	adminGroup := app.Group("/admin/achievements")

	manageAchievements := middleware.CheckPermissionMiddleware("manage-achievements")

	adminGroup.Post("/create", middleware.JWTMiddleware, manageAchievements, validators.CreateAchievement(), achievementControllers.AdminCreateAchievement)
	adminGroup.Put("/:achievementId", middleware.JWTMiddleware, manageAchievements, validators.AchievementID(), achievementControllers.AdminUpdateAchievement)
	adminGroup.Delete("/:achievementId", middleware.JWTMiddleware, manageAchievements, validators.AchievementID(), achievementControllers.AdminDeleteAchievement)
	adminGroup.Post("/advance", middleware.JWTMiddleware, manageAchievements, validators.AdvanceAchievement(), achievementControllers.AdminAdvanceAchievement)
}
