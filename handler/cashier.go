package handler

import (
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/helper"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func adminOnly(c *fiber.Ctx) (*model.Cashier, bool) {
	cashier, ok := GetCashierOr403(c)
	if !ok {
		return nil, false
	}
	if cashier.Role != constants.ROLE_ADMIN {
		utils.ErrorResponse(c, fiber.StatusForbidden, "Admin only", nil)
		return nil, false
	}
	return cashier, true
}

// CreateCashier provisions a staff account. Admin only.
func CreateCashier(c *fiber.Ctx) error {
	if _, ok := adminOnly(c); !ok {
		return nil
	}

	input, ok := c.Locals("CreateCashier").(model.CreateCashierInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	newCashier := new(model.Cashier)
	copier.Copy(&newCashier, &input)
	newCashier.Password = hash
	newCashier.PublicCode = helper.NextCashierCode()
	newCashier.Active = true
	if newCashier.Role == "" {
		newCashier.Role = constants.ROLE_CASHIER
	}

	if err := database.DB.Create(&newCashier).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email is already registered", nil, "email")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newCashier)
}

// GetCashiers lists staff accounts. Admin only.
func GetCashiers(c *fiber.Ctx) error {
	if _, ok := adminOnly(c); !ok {
		return nil
	}

	var cashiers model.Cashiers
	if err := database.DB.Order("public_code").Find(&cashiers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load staff", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cashiers)
}
