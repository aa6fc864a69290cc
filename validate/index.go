package validate

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetById rejects non-numeric path ids before the handler runs
func GetById(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params(param)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid %s: %s", param, raw),
			})
		}
		c.Locals(param, uint(id))
		return c.Next()
	}
}
