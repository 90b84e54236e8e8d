package enrollmentController

import (
	"skillforge/database"
	"skillforge/middleware"
	"skillforge/models"
	"skillforge/services/progression"

	"github.com/gofiber/fiber/v2"
)

// EnrollInModule enrolls the user into a published module
func EnrollInModule(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated module ID
	moduleID := c.Locals("moduleID").(int)

	enrollment, err := progression.EnrollModule(userID, uint(moduleID))
	if err != nil {
		switch err {
		case progression.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found or not published!", nil)
		case progression.ErrAlreadyEnrolled:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this module!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in module!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in module successfully!", enrollment)
}

// GetEnrollments lists the user's enrollments with module details
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type EnrollmentWithModule struct {
		models.Enrollment
		ModuleTitle      string `json:"module_title"`
		ModuleDifficulty string `json:"module_difficulty"`
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithModule, len(enrollments))
	for i, e := range enrollments {
		var module models.LearningModule
		database.Database.Db.Where("id = ?", e.ModuleID).First(&module)
		result[i] = EnrollmentWithModule{
			Enrollment:       e,
			ModuleTitle:      module.Title,
			ModuleDifficulty: module.Difficulty,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// PauseEnrollment pauses an active enrollment
func PauseEnrollment(c *fiber.Ctx) error {
	return lifecycleTransition(c, progression.PauseEnrollment, "Enrollment paused successfully!", "Only active enrollments can be paused!")
}

// ResumeEnrollment reactivates a paused enrollment
func ResumeEnrollment(c *fiber.Ctx) error {
	return lifecycleTransition(c, progression.ResumeEnrollment, "Enrollment resumed successfully!", "Only paused enrollments can be resumed!")
}

// DropEnrollment abandons an enrollment
func DropEnrollment(c *fiber.Ctx) error {
	return lifecycleTransition(c, progression.DropEnrollment, "Enrollment dropped successfully!", "Only active or paused enrollments can be dropped!")
}

// Unenroll removes the enrollment entirely
func Unenroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	if err := progression.Unenroll(userID, uint(enrollmentID)); err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled successfully!", nil)
}

func lifecycleTransition(c *fiber.Ctx, transition func(uint, uint) (*models.Enrollment, error), successMsg, preconditionMsg string) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	enrollment, err := transition(userID, uint(enrollmentID))
	if err != nil {
		switch err {
		case progression.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case progression.ErrInvalidTransition:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, preconditionMsg, nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, successMsg, enrollment)
}
