package catalogController

import (
	"skillforge/database"
	"skillforge/middleware"
	"skillforge/models"

	"github.com/gofiber/fiber/v2"
)

// GetPhases lists published curriculum phases with their published modules
func GetPhases(c *fiber.Ctx) error {
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

	var phases []models.Phase
	if err := database.Database.Db.Where("is_deleted = ? AND is_published = ?", false, true).
		Order("order_index asc").Find(&phases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch phases!", nil)
	}

	type PhaseWithModules struct {
		models.Phase
		Modules []models.LearningModule `json:"modules"`
	}

	result := make([]PhaseWithModules, len(phases))
	for i, phase := range phases {
		var modules []models.LearningModule
		database.Database.Db.Where("phase_id = ? AND is_deleted = ? AND is_published = ?", phase.ID, false, true).
			Order("order_index asc").Find(&modules)
		result[i] = PhaseWithModules{
			Phase:   phase,
			Modules: modules,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Phases fetched successfully!", fiber.Map{
		"phases": result,
		"total":  len(result),
	})
}

// GetModuleDetails returns one published module with its items, the user's
// enrollment (if any) and per-item completion flags
func GetModuleDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated module ID
	moduleID := c.Locals("moduleID").(int)

	var module models.LearningModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found or not published!", nil)
	}

	var items []models.ContentItem
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", moduleID, false, true).
		Order("section asc, order_index asc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content items!", nil)
	}

	// Mark items the user already completed
	var completedIDs []uint
	database.Database.Db.Model(&models.ContentProgress{}).
		Where("user_id = ? AND status = ?", userID, models.ProgressCompleted).
		Pluck("content_id", &completedIDs)
	completedSet := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completedSet[id] = true
	}

	type ItemWithCompletion struct {
		models.ContentItem
		IsCompleted bool `json:"is_completed"`
	}

	itemList := make([]ItemWithCompletion, len(items))
	for i, item := range items {
		itemList[i] = ItemWithCompletion{
			ContentItem: item,
			IsCompleted: completedSet[item.ID],
		}
	}

	data := fiber.Map{
		"module": module,
		"items":  itemList,
		"total":  len(itemList),
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).
		First(&enrollment).Error; err == nil {
		data["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module details fetched successfully!", data)
}
