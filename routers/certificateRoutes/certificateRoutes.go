package certificateRoutes

import (
	controllers "skillforge/controllers/certificate"
	"skillforge/middleware"
	validators "skillforge/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate request and review routes
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	certGroup.Post("/request/:enrollmentId", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.RequestCertificate)
	certGroup.Get("/", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Admin review
	issueCerts := middleware.CheckPermissionMiddleware("issue-certificates")

	adminGroup := app.Group("/admin/certificates")
	adminGroup.Get("/pending", middleware.JWTMiddleware, issueCerts, controllers.AdminGetPendingRequests)
	adminGroup.Post("/:requestId/approve", middleware.JWTMiddleware, issueCerts, validators.RequestID(), controllers.AdminApproveCertificate)
	adminGroup.Post("/:requestId/reject", middleware.JWTMiddleware, issueCerts, validators.RequestID(), controllers.AdminRejectCertificate)
}
