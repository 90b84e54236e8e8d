package achievementController

import (
	"skillforge/database"
	"skillforge/middleware"
	"skillforge/models"
	"skillforge/services/progression"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUserAchievements lists every achievement with the user's progress
func GetUserAchievements(c *fiber.Ctx) error {
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

	achievements, err := progression.ListUserAchievements(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}

	completed := 0
	for _, a := range achievements {
		if a.IsCompleted {
			completed++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements fetched successfully!", fiber.Map{
		"achievements": achievements,
		"total":        len(achievements),
		"completed":    completed,
	})
}

// GetAchievementLeaderboard ranks users by earned achievement XP
func GetAchievementLeaderboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := progression.AchievementLeaderboard(limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"leaderboard": entries,
	})
}

// AdminCreateAchievement creates a new achievement definition
func AdminCreateAchievement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated achievement data
	reqData, ok := c.Locals("validatedAchievement").(*struct {
		Slug        string `json:"slug"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Target      int    `json:"target"`
		XPReward    int    `json:"xp_reward"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check for duplicate slug
	var existing models.Achievement
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", reqData.Slug, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Achievement slug already exists!", nil)
	}

	achievement := models.Achievement{
		Slug:        reqData.Slug,
		Title:       reqData.Title,
		Description: reqData.Description,
		Category:    reqData.Category,
		Target:      reqData.Target,
		XPReward:    reqData.XPReward,
		IsActive:    true,
	}

	if err := database.Database.Db.Create(&achievement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Achievement created successfully!", achievement)
}

// AdminUpdateAchievement edits an achievement definition. Target and reward
// changes only affect future progress; completed rows keep their snapshot.
func AdminUpdateAchievement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	achievementID := c.Locals("achievementID").(int)

	var achievement models.Achievement
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", achievementID, false).First(&achievement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Achievement not found!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		XPReward    *int   `json:"xp_reward"`
		IsActive    *bool  `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		achievement.Title = reqData.Title
	}
	if reqData.Description != "" {
		achievement.Description = reqData.Description
	}
	if reqData.XPReward != nil && *reqData.XPReward >= 0 {
		achievement.XPReward = *reqData.XPReward
	}
	if reqData.IsActive != nil {
		achievement.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&achievement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievement updated successfully!", achievement)
}

// AdminDeleteAchievement soft-deletes an achievement definition
func AdminDeleteAchievement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	achievementID := c.Locals("achievementID").(int)

	var achievement models.Achievement
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", achievementID, false).First(&achievement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Achievement not found!", nil)
	}

	if err := database.Database.Db.Model(&achievement).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievement deleted successfully!", nil)
}

// AdminAdvanceAchievement sets a user's progress on one achievement to an
// absolute count, for support corrections
func AdminAdvanceAchievement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedAchievementAdvance").(*struct {
		UserID  uint   `json:"user_id"`
		Slug    string `json:"slug"`
		Current int    `json:"current"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	newlyCompleted, err := progression.AdvanceAchievement(reqData.UserID, reqData.Slug, reqData.Current)
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Achievement not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to advance achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievement advanced successfully!", fiber.Map{
		"newly_completed": newlyCompleted,
	})
}
