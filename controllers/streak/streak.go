package streakController

import (
	"skillforge/middleware"
	"skillforge/services/progression"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetStreak returns the user's streak counters and display status
func GetStreak(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	status, user, err := progression.StreakStatus(userID)
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch streak!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Streak fetched successfully!", fiber.Map{
		"current_streak":     user.CurrentStreak,
		"longest_streak":     user.LongestStreak,
		"last_activity_date": user.LastActivityDate,
		"status":             status,
	})
}

// GetStreakLeaderboard ranks users by current streak length
func GetStreakLeaderboard(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := progression.StreakLeaderboard(limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"leaderboard": entries,
	})
}
