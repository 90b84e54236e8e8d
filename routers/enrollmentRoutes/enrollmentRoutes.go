package enrollmentRoutes

import (
	controllers "skillforge/controllers/enrollment"
	"skillforge/middleware"
	validators "skillforge/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment lifecycle routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/enrollments")

	enrollmentGroup.Post("/module/:moduleId", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("enroll"), validators.ModuleID(), controllers.EnrollInModule)
	enrollmentGroup.Get("/", middleware.JWTMiddleware, controllers.GetEnrollments)

	enrollmentGroup.Post("/:enrollmentId/pause", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.PauseEnrollment)
	enrollmentGroup.Post("/:enrollmentId/resume", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.ResumeEnrollment)
	enrollmentGroup.Post("/:enrollmentId/drop", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.DropEnrollment)
	enrollmentGroup.Delete("/:enrollmentId", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.Unenroll)
}
