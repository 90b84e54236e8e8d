package certificateController

import (
	"log"
	"skillforge/database"
	"skillforge/middleware"
	"skillforge/models"
	"skillforge/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestCertificate files a certificate request for a completed enrollment
func RequestCertificate(c *fiber.Ctx) error {
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

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status != models.EnrollmentCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate can only be requested for completed modules!", nil)
	}

	// One open or approved request per enrollment
	var existing models.CertificateRequest
	if err := database.Database.Db.Where("enrollment_id = ? AND status <> ? AND is_deleted = ?",
		enrollment.ID, models.CertificateRejected, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already requested for this module!", nil)
	}

	request := models.CertificateRequest{
		UserID:       userID,
		ModuleID:     enrollment.ModuleID,
		EnrollmentID: enrollment.ID,
		Status:       models.CertificatePending,
		RequestedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate requested successfully!", request)
}

// GetUserCertificates lists the user's issued certificates and open requests
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	var requests []models.CertificateRequest
	database.Database.Db.Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.CertificatePending, false).
		Order("requested_at desc").Find(&requests)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates":     certificates,
		"pending_requests": requests,
	})
}

// AdminGetPendingRequests lists certificate requests awaiting review
func AdminGetPendingRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var requests []models.CertificateRequest
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", models.CertificatePending, false).
		Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// AdminApproveCertificate approves a pending request and issues the certificate
func AdminApproveCertificate(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", adminID, false).First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	requestID := c.Locals("requestID").(int)

	var request models.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != models.CertificatePending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already reviewed!", nil)
	}

	certificate := models.Certificate{
		UserID:        request.UserID,
		ModuleID:      request.ModuleID,
		CertificateNo: uuid.New().String(),
		IssuedAt:      time.Now(),
		IssuedBy:      adminID,
	}

	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	if err := database.Database.Db.Model(&request).Updates(map[string]interface{}{
		"status":      models.CertificateApproved,
		"reviewed_by": adminID,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}

	// Notify the student
	var student models.User
	var module models.LearningModule
	if err := database.Database.Db.Where("id = ?", request.UserID).First(&student).Error; err == nil {
		database.Database.Db.Where("id = ?", request.ModuleID).First(&module)
		if err := utils.SendCertificateEmail(student.Name, student.Email, module.Title, certificate.CertificateNo); err != nil {
			log.Printf("Failed to send certificate email to user %d: %v", student.ID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved and issued successfully!", certificate)
}

// AdminRejectCertificate rejects a pending request with optional notes
func AdminRejectCertificate(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", adminID, false).First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	requestID := c.Locals("requestID").(int)

	var request models.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != models.CertificatePending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already reviewed!", nil)
	}

	reqData := new(struct {
		Notes string `json:"notes"`
	})
	if len(c.Body()) > 0 {
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
	}

	if err := database.Database.Db.Model(&request).Updates(map[string]interface{}{
		"status":      models.CertificateRejected,
		"reviewed_by": adminID,
		"notes":       reqData.Notes,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected!", request)
}
