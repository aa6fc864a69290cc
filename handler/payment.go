package handler

import (
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment settles a tendered amount against an order. Each call is one
// settlement attempt with its own immutable payment record; a declined
// attempt leaves the order FAILED and the caller free to retry with a
// different amount.
func CreatePayment(c *fiber.Ctx) error {
	input, ok := c.Locals("CreatePayment").(model.CreatePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	order, err := findOrderByCode(input.OrderCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	if !canTouchOrder(c, order) {
		return nil
	}
	if order.Status == model.StatusCancelled {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order is cancelled", nil)
	}
	if order.Payment != nil && order.Payment.Status == model.StatusComplete {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order is already paid", nil)
	}

	payment, success := model.SettlePayment(order, input.Amount, model.PaymentMethod(input.Method))

	next := model.StatusComplete
	if !success {
		next = model.StatusFailed
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		order.AttachPayment(payment)
		if err := order.UpdateStatus(next); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     order.Status,
			"payment_id": order.PaymentID,
		}
		if success {
			now := time.Now()
			order.PaidAt = &now
			updates["paid_at"] = order.PaidAt
		}
		return tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishOrderStatus(order)

	if !success {
		return utils.ErrorResponse(c, fiber.StatusPaymentRequired,
			"Payment declined", model.ErrPaymentDeclined)
	}

	// paid dine-in means the party is done with the table
	if order.Mode == model.DineIn && order.TableNumber != nil {
		if released, err := Tables.Release(*order.TableNumber); err == nil {
			persistTableStatus(released)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"payment": payment,
		"change":  payment.Change(order.Total),
		"order":   order.Summary(),
	})
}
