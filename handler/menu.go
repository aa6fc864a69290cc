package handler

import (
	"restaurant_pos/database"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMenu lists the available catalog. The menu is seeded; there is no
// authoring surface.
func GetMenu(c *fiber.Ctx) error {
	var items model.MenuItems
	if err := database.DB.
		Where("available = ?", true).
		Order("category, name").
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load menu", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}
