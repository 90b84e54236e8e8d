package progressController

import (
	"skillforge/database"
	"skillforge/middleware"
	"skillforge/models"
	"skillforge/services/progression"

	"github.com/gofiber/fiber/v2"
)

// StartContent marks a content item as opened by the user
func StartContent(c *fiber.Ctx) error {
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

	// Retrieve validated content ID
	contentID := c.Locals("contentID").(int)

	record, alreadyStarted, err := progression.StartContent(userID, uint(contentID))
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found or not published!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start content!", nil)
	}

	if alreadyStarted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content already started!", record)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content started successfully!", record)
}

// UpdateContentProgress persists a new progress percentage for the user
func UpdateContentProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	contentID := c.Locals("contentID").(int)

	// Retrieve validated progress data
	reqData, ok := c.Locals("validatedProgressUpdate").(*struct {
		Percentage *int `json:"percentage"`
		TimeSpent  *int `json:"time_spent"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	timeSpent := 0
	if reqData.TimeSpent != nil {
		timeSpent = *reqData.TimeSpent
	}

	record, err := progression.UpdateContentProgress(userID, uint(contentID), *reqData.Percentage, timeSpent)
	if err != nil {
		switch err {
		case progression.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found or not published!", nil)
		case progression.ErrPercentageRange:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Percentage must be between 0 and 100!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", record)
}

// CompleteContent explicitly completes a content item for the user
func CompleteContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	contentID := c.Locals("contentID").(int)

	reqData, _ := c.Locals("validatedContentComplete").(*struct {
		Score    *int `json:"score"`
		MaxScore *int `json:"max_score"`
	})

	var score, maxScore *int
	if reqData != nil {
		score = reqData.Score
		maxScore = reqData.MaxScore
	}

	record, err := progression.CompleteContent(userID, uint(contentID), score, maxScore)
	if err != nil {
		switch err {
		case progression.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found or not published!", nil)
		case progression.ErrScoreRange:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Score cannot exceed max score!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete content!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content completed successfully!", record)
}

// GetContentProgress fetches the user's progress on one content item
func GetContentProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	contentID := c.Locals("contentID").(int)

	record, err := progression.GetContentProgress(userID, uint(contentID))
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found or not published!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":    record,
		"not_started": record.ID == 0,
	})
}

// GetUserOverallProgress aggregates the user's progress across all enrollments
func GetUserOverallProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	overview, err := progression.UserOverallProgress(userID)
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", overview)
}

// GetUserModuleProgress returns the per-item breakdown for one module
func GetUserModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	breakdown, err := progression.UserModuleProgress(userID, uint(moduleID))
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found or not published!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch module progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module progress fetched successfully!", breakdown)
}
