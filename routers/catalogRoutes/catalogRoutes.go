package catalogRoutes

import (
	controllers "skillforge/controllers/catalog"
	"skillforge/middleware"
	validators "skillforge/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes sets up the user-facing catalog routes
func SetupCatalogRoutes(app *fiber.App) {
	catalogGroup := app.Group("/catalog")

	catalogGroup.Get("/phases", middleware.JWTMiddleware, controllers.GetPhases)
	catalogGroup.Get("/module/:moduleId", middleware.JWTMiddleware, validators.ModuleID(), controllers.GetModuleDetails)
}

// SetupAdminCatalogRoutes sets up all admin catalog management routes
func SetupAdminCatalogRoutes(app *fiber.App) {
	manageCatalog := middleware.CheckPermissionMiddleware("manage-catalog")

	// Phase management
	phaseGroup := app.Group("/admin/phase")
	phaseGroup.Post("/create", middleware.JWTMiddleware, manageCatalog, controllers.CreatePhase)
	phaseGroup.Put("/:phaseId", middleware.JWTMiddleware, manageCatalog, validators.PhaseID(), controllers.UpdatePhase)
	phaseGroup.Post("/:phaseId/publish", middleware.JWTMiddleware, manageCatalog, validators.PhaseID(), controllers.TogglePhasePublish)
	phaseGroup.Delete("/:phaseId", middleware.JWTMiddleware, manageCatalog, validators.PhaseID(), controllers.DeletePhase)

	// Module management
	moduleGroup := app.Group("/admin/module")
	moduleGroup.Post("/create", middleware.JWTMiddleware, manageCatalog, controllers.CreateModule)
	moduleGroup.Put("/:moduleId", middleware.JWTMiddleware, manageCatalog, validators.ModuleID(), controllers.UpdateModule)
	moduleGroup.Post("/:moduleId/publish", middleware.JWTMiddleware, manageCatalog, validators.ModuleID(), controllers.ToggleModulePublish)
	moduleGroup.Delete("/:moduleId", middleware.JWTMiddleware, manageCatalog, validators.ModuleID(), controllers.DeleteModule)
	moduleGroup.Post("/:moduleId/reorder", middleware.JWTMiddleware, manageCatalog, validators.ModuleID(), controllers.ReorderContent)

	// Content management
	contentGroup := app.Group("/admin/content")
	contentGroup.Post("/create", middleware.JWTMiddleware, manageCatalog, controllers.CreateContent)
	contentGroup.Put("/:contentId", middleware.JWTMiddleware, manageCatalog, validators.ContentID(), controllers.UpdateContent)
	contentGroup.Post("/:contentId/publish", middleware.JWTMiddleware, manageCatalog, validators.ContentID(), controllers.ToggleContentPublish)
	contentGroup.Delete("/:contentId", middleware.JWTMiddleware, manageCatalog, validators.ContentID(), controllers.DeleteContent)

	// Enrollment overrides and dashboard
	adminGroup := app.Group("/admin")
	adminGroup.Post("/enrollment/:enrollmentId/complete", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-enrollments"), validators.EnrollmentID(), controllers.AdminCompleteEnrollment)
	adminGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("view-dashboard"), controllers.AdminDashboardStats)
}
