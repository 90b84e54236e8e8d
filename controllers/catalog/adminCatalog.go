package catalogController

import (
	"log"
	"skillforge/database"
	"skillforge/middleware"
	"skillforge/models"
	"skillforge/services/progression"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePhase creates a curriculum phase, appended after existing phases
func CreatePhase(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	var reqData models.Phase
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}

	phase := models.Phase{
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  nextOrderIndex(&models.Phase{}, ""),
	}

	if err := database.Database.Db.Create(&phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create phase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Phase created successfully!", phase)
}

// UpdatePhase edits a phase's title and description
func UpdatePhase(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	phaseID := c.Locals("phaseID").(int)

	var phase models.Phase
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", phaseID, false).First(&phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Phase not found!", nil)
	}

	var reqData models.Phase
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		phase.Title = reqData.Title
	}
	if reqData.Description != "" {
		phase.Description = reqData.Description
	}

	if err := database.Database.Db.Save(&phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update phase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Phase updated successfully!", phase)
}

// TogglePhasePublish flips a phase's published flag
func TogglePhasePublish(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	phaseID := c.Locals("phaseID").(int)

	var phase models.Phase
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", phaseID, false).First(&phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Phase not found!", nil)
	}

	phase.IsPublished = !phase.IsPublished
	if err := database.Database.Db.Model(&phase).Update("is_published", phase.IsPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update phase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Phase publish state updated!", phase)
}

// DeletePhase soft-deletes a phase
func DeletePhase(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	phaseID := c.Locals("phaseID").(int)

	var phase models.Phase
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", phaseID, false).First(&phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Phase not found!", nil)
	}

	if err := database.Database.Db.Model(&phase).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete phase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Phase deleted successfully!", nil)
}

// CreateModule creates a learning module inside a phase
func CreateModule(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	var reqData models.LearningModule
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" || reqData.PhaseID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title and phase_id are required!", nil)
	}

	var phase models.Phase
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.PhaseID, false).First(&phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Phase not found!", nil)
	}

	difficulty := reqData.Difficulty
	switch difficulty {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	case "":
		difficulty = models.DifficultyBeginner
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid difficulty!", nil)
	}

	module := models.LearningModule{
		PhaseID:     reqData.PhaseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Difficulty:  difficulty,
		OrderIndex:  nextOrderIndexWhere(&models.LearningModule{}, "phase_id = ?", reqData.PhaseID),
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule edits a module's metadata
func UpdateModule(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	var module models.LearningModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var reqData models.LearningModule
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.Difficulty != "" {
		switch reqData.Difficulty {
		case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
			module.Difficulty = reqData.Difficulty
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid difficulty!", nil)
		}
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// ToggleModulePublish flips a module's published flag
func ToggleModulePublish(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	var module models.LearningModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsPublished = !module.IsPublished
	if err := database.Database.Db.Model(&module).Update("is_published", module.IsPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module publish state updated!", module)
}

// DeleteModule soft-deletes a module
func DeleteModule(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	var module models.LearningModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := database.Database.Db.Model(&module).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// CreateContent creates a content item at the end of its section
func CreateContent(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	var reqData models.ContentItem
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" || reqData.ModuleID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title and module_id are required!", nil)
	}

	var module models.LearningModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	contentType := reqData.ContentType
	switch contentType {
	case models.ContentVideo, models.ContentLab, models.ContentGame, models.ContentDocument:
	case "":
		contentType = models.ContentVideo
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content type!", nil)
	}

	item := models.ContentItem{
		ModuleID:        reqData.ModuleID,
		Title:           reqData.Title,
		Description:     reqData.Description,
		ContentType:     contentType,
		Section:         reqData.Section,
		DurationMinutes: reqData.DurationMinutes,
		VideoURL:        reqData.VideoURL,
		DocumentURL:     reqData.DocumentURL,
		OrderIndex:      nextOrderIndexWhere(&models.ContentItem{}, "module_id = ? AND section = ?", reqData.ModuleID, reqData.Section),
	}

	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content item created successfully!", item)
}

// UpdateContent edits a content item's metadata
func UpdateContent(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	contentID := c.Locals("contentID").(int)

	var item models.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}

	var reqData models.ContentItem
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		item.Title = reqData.Title
	}
	if reqData.Description != "" {
		item.Description = reqData.Description
	}
	if reqData.Section != "" {
		item.Section = reqData.Section
	}
	if reqData.DurationMinutes > 0 {
		item.DurationMinutes = reqData.DurationMinutes
	}
	if reqData.VideoURL != "" {
		item.VideoURL = reqData.VideoURL
	}
	if reqData.DocumentURL != "" {
		item.DocumentURL = reqData.DocumentURL
	}
	if reqData.ContentType != "" {
		switch reqData.ContentType {
		case models.ContentVideo, models.ContentLab, models.ContentGame, models.ContentDocument:
			item.ContentType = reqData.ContentType
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content type!", nil)
		}
	}

	if err := database.Database.Db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content item updated successfully!", item)
}

// ToggleContentPublish flips a content item's published flag. Unpublishing
// an item changes live enrollment percentages on the next recompute.
func ToggleContentPublish(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	contentID := c.Locals("contentID").(int)

	var item models.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}

	item.IsPublished = !item.IsPublished
	if err := database.Database.Db.Model(&item).Update("is_published", item.IsPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content publish state updated!", item)
}

// DeleteContent soft-deletes a content item
func DeleteContent(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	contentID := c.Locals("contentID").(int)

	var item models.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}

	if err := database.Database.Db.Model(&item).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content item deleted successfully!", nil)
}

// ReorderContent applies a new ordering of content IDs within one module.
// Affected rows are parked at temporary negative order values first so the
// swap never collides, all inside one transaction.
func ReorderContent(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	var module models.LearningModule
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData := new(struct {
		ContentIDs []uint `json:"content_ids"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData.ContentIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "content_ids is required!", nil)
	}

	// Every ID must belong to this module
	var count int64
	database.Database.Db.Model(&models.ContentItem{}).
		Where("id IN ? AND module_id = ? AND is_deleted = ?", reqData.ContentIDs, moduleID, false).
		Count(&count)
	if int(count) != len(reqData.ContentIDs) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "content_ids contains items outside this module!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		for i, id := range reqData.ContentIDs {
			if err := tx.Model(&models.ContentItem{}).
				Where("id = ?", id).
				Update("order_index", -(i + 1)).Error; err != nil {
				return err
			}
		}
		for i, id := range reqData.ContentIDs {
			if err := tx.Model(&models.ContentItem{}).
				Where("id = ?", id).
				Update("order_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to reorder content for module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder content!", nil)
	}

	var items []models.ContentItem
	database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("section asc, order_index asc").Find(&items)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content reordered successfully!", fiber.Map{
		"items": items,
	})
}

// AdminCompleteEnrollment force-completes any user's enrollment
func AdminCompleteEnrollment(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	enrollment, flipped, err := progression.CompleteEnrollmentAdmin(uint(enrollmentID))
	if err != nil {
		if err == progression.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete enrollment!", nil)
	}

	msg := "Enrollment completed successfully!"
	if !flipped {
		msg = "Enrollment was already completed!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, enrollment)
}

// AdminDashboardStats returns platform-wide counters
func AdminDashboardStats(c *fiber.Ctx) error {
	if ok, err := requireAdminUser(c); !ok {
		return err
	}

	db := database.Database.Db

	var totalUsers, totalModules, totalContents, totalEnrollments, completedEnrollments, completedContents int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.LearningModule{}).Where("is_deleted = ?", false).Count(&totalModules)
	db.Model(&models.ContentItem{}).Where("is_deleted = ?", false).Count(&totalContents)
	db.Model(&models.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&models.Enrollment{}).Where("is_deleted = ? AND status = ?", false, models.EnrollmentCompleted).Count(&completedEnrollments)
	db.Model(&models.ContentProgress{}).Where("status = ?", models.ProgressCompleted).Count(&completedContents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":           totalUsers,
		"total_modules":         totalModules,
		"total_contents":        totalContents,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"completed_contents":    completedContents,
	})
}

// requireAdminUser resolves the authenticated user, writing the error
// response itself when the check fails
func requireAdminUser(c *fiber.Ctx) (bool, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return false, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return true, nil
}

func nextOrderIndex(model interface{}, _ string) int {
	return nextOrderIndexWhere(model, "1 = 1")
}

// nextOrderIndexWhere returns MAX(order_index)+1 within the given scope
func nextOrderIndexWhere(model interface{}, query string, args ...interface{}) int {
	var max *int
	database.Database.Db.Model(model).
		Select("MAX(order_index)").
		Where(query, args...).
		Where("is_deleted = ?", false).
		Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}
