package catalogValidator

import (
	"skillforge/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PhaseID validates the :phaseId route param
func PhaseID() fiber.Handler {
	return idParam("phaseId", "phaseID", "Phase")
}

// ModuleID validates the :moduleId route param
func ModuleID() fiber.Handler {
	return idParam("moduleId", "moduleID", "Module")
}

// ContentID validates the :contentId route param
func ContentID() fiber.Handler {
	return idParam("contentId", "contentID", "Content")
}

// EnrollmentID validates the :enrollmentId route param
func EnrollmentID() fiber.Handler {
	return idParam("enrollmentId", "enrollmentID", "Enrollment")
}

func idParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}
