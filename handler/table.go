package handler

import (
	"errors"
	"log"
	"strconv"

	"restaurant_pos/database"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
)

// Tables is the process-wide occupancy registry. Loaded once at boot; every
// grant/release goes through it so two concurrent dine-in intakes can never
// both win the same table.
var Tables *model.TableRegistry

// LoadTables builds the registry from the persisted table set, in table
// number order
func LoadTables() {
	var rows []*model.Table
	if err := database.DB.Order("number asc").Find(&rows).Error; err != nil {
		log.Fatalf("failed to load tables: %v", err)
	}
	Tables = model.NewTableRegistry(rows)
	log.Printf("table registry ready: %d tables", len(rows))
}

// persistTableStatus mirrors a registry change into the tables table
func persistTableStatus(t *model.Table) {
	if err := database.DB.Model(&model.Table{}).
		Where("number = ?", t.Number).
		Update("status", t.Status).Error; err != nil {
		log.Printf("failed to persist status of table %d: %v", t.Number, err)
	}
}

func GetTables(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, Tables.All())
}

// GetAvailableTables returns the free tables; an empty list just means no
// availability right now
func GetAvailableTables(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, Tables.Available())
}

// ReleaseTable frees a table by hand (staff action, e.g. walk-outs).
// Releasing an already-free table succeeds.
func ReleaseTable(c *fiber.Ctx) error {
	if _, ok := GetCashierOr403(c); !ok {
		return nil
	}

	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid table number", err)
	}

	table, err := Tables.Release(number)
	if err != nil {
		if errors.Is(err, model.ErrTableNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Table does not exist", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not release table", err)
	}
	persistTableStatus(table)

	return utils.SuccessResponse(c, fiber.StatusOK, table)
}
