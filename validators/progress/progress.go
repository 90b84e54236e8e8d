package progressValidator

import (
	"skillforge/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ContentID validates the :contentId route param
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("contentId"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// ModuleID validates the :moduleId route param
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleIDStr := strings.TrimSpace(c.Params("moduleId"))
		if moduleIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required!", nil)
		}

		moduleID, err := strconv.Atoi(moduleIDStr)
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// UpdateProgress validates the progress update body
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Percentage *int `json:"percentage"`
			TimeSpent  *int `json:"time_spent"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Percentage == nil {
			errors["percentage"] = "Percentage is required!"
		} else if *reqData.Percentage < 0 || *reqData.Percentage > 100 {
			errors["percentage"] = "Percentage must be between 0 and 100!"
		}

		if reqData.TimeSpent != nil && *reqData.TimeSpent < 0 {
			errors["time_spent"] = "Time spent cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgressUpdate", reqData)
		return c.Next()
	}
}

// CompleteContent validates the optional score payload
func CompleteContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score    *int `json:"score"`
			MaxScore *int `json:"max_score"`
		})

		// Body is optional for content types without scoring
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		errors := make(map[string]string)

		if reqData.Score != nil && *reqData.Score < 0 {
			errors["score"] = "Score cannot be negative!"
		}
		if reqData.MaxScore != nil && *reqData.MaxScore <= 0 {
			errors["max_score"] = "Max score must be a positive number!"
		}
		if reqData.Score != nil && reqData.MaxScore == nil {
			errors["max_score"] = "Max score is required when score is provided!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContentComplete", reqData)
		return c.Next()
	}
}
