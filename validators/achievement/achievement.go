package achievementValidator

import (
	"regexp"
	"skillforge/middleware"
	"skillforge/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var validCategories = map[string]bool{
	models.CategoryVideo:      true,
	models.CategoryLab:        true,
	models.CategoryGame:       true,
	models.CategoryDocument:   true,
	models.CategoryContent:    true,
	models.CategoryModule:     true,
	models.CategoryEnrollment: true,
	models.CategoryStreak:     true,
}

// CreateAchievement validates the admin achievement creation body
func CreateAchievement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Slug        string `json:"slug"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Target      int    `json:"target"`
			XPReward    int    `json:"xp_reward"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Slug = strings.TrimSpace(reqData.Slug)
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Category = strings.TrimSpace(strings.ToUpper(reqData.Category))

		if reqData.Slug == "" {
			errors["slug"] = "Slug is required!"
		} else if !slugPattern.MatchString(reqData.Slug) {
			errors["slug"] = "Slug must be lowercase letters, digits and hyphens!"
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if !validCategories[reqData.Category] {
			errors["category"] = "Invalid achievement category!"
		}

		if reqData.Target <= 0 {
			errors["target"] = "Target must be a positive number!"
		}

		if reqData.XPReward < 0 {
			errors["xp_reward"] = "XP reward cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAchievement", reqData)
		return c.Next()
	}
}

// AchievementID validates the :achievementId route param
func AchievementID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		achievementIDStr := strings.TrimSpace(c.Params("achievementId"))
		if achievementIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Achievement ID is required!", nil)
		}

		achievementID, err := strconv.Atoi(achievementIDStr)
		if err != nil || achievementID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Achievement ID!", nil)
		}

		c.Locals("achievementID", achievementID)
		return c.Next()
	}
}

// AdvanceAchievement validates the admin progress-correction body
func AdvanceAchievement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID  uint   `json:"user_id"`
			Slug    string `json:"slug"`
			Current int    `json:"current"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Slug = strings.TrimSpace(reqData.Slug)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.Slug == "" {
			errors["slug"] = "Slug is required!"
		}
		if reqData.Current < 0 {
			errors["current"] = "Current cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAchievementAdvance", reqData)
		return c.Next()
	}
}
