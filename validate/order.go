package validate

import (
	"errors"
	"fmt"

	"restaurant_pos/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// checkConditionalFields enforces what each fulfilment mode must and must not
// carry: dine-in needs a table, delivery needs an address, takeaway neither.
func checkConditionalFields(mode model.FulfilmentMode, tableNumber *int, deliveryAddress *string) error {
	switch mode {
	case model.DineIn:
		if tableNumber == nil || *tableNumber <= 0 {
			return errors.New("tableNumber is required for dine-in orders")
		}
		if deliveryAddress != nil {
			return errors.New("deliveryAddress is not allowed for dine-in orders")
		}
	case model.OnlineDelivery:
		if deliveryAddress == nil || *deliveryAddress == "" {
			return errors.New("deliveryAddress is required for delivery orders")
		}
		if tableNumber != nil {
			return errors.New("tableNumber is not allowed for delivery orders")
		}
	case model.Takeaway:
		if tableNumber != nil {
			return errors.New("tableNumber is not allowed for takeaway orders")
		}
		if deliveryAddress != nil {
			return errors.New("deliveryAddress is not allowed for takeaway orders")
		}
	default:
		return fmt.Errorf("unknown order type %q", mode)
	}
	return nil
}

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("CreateOrder", input)
		return c.Next()
	}
}

func CounterOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CounterOrderInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := checkConditionalFields(model.FulfilmentMode(input.OrderType), input.TableNumber, nil); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("CounterOrder", input)
		return c.Next()
	}
}

func AddItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.OrderItemInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("AddItem", input)
		return c.Next()
	}
}

func MutateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.MutateItemInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("MutateItem", input)
		return c.Next()
	}
}
