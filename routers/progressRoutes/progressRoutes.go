package progressRoutes

import (
	controllers "skillforge/controllers/progress"
	"skillforge/middleware"
	validators "skillforge/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up content progress tracking routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress")

	// Per-content tracking
	progressGroup.Post("/content/:contentId/start", middleware.JWTMiddleware, validators.ContentID(), controllers.StartContent)
	progressGroup.Put("/content/:contentId", middleware.JWTMiddleware, validators.ContentID(), validators.UpdateProgress(), controllers.UpdateContentProgress)
	progressGroup.Post("/content/:contentId/complete", middleware.JWTMiddleware, validators.ContentID(), validators.CompleteContent(), controllers.CompleteContent)
	progressGroup.Get("/content/:contentId", middleware.JWTMiddleware, validators.ContentID(), controllers.GetContentProgress)

	// Aggregated views
	progressGroup.Get("/overview", middleware.JWTMiddleware, controllers.GetUserOverallProgress)
	progressGroup.Get("/module/:moduleId", middleware.JWTMiddleware, validators.ModuleID(), controllers.GetUserModuleProgress)
}
