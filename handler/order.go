package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/helper"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func findOrderByCode(code string) (*model.Order, error) {
	var order model.Order
	err := database.DB.
		Preload("Items").
		Preload("Payment").
		Preload("Customer").
		Where("public_code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// buildLines resolves cart input against the menu catalog and snapshots
// name/price into order lines
func buildLines(inputs []model.OrderItemInput) ([]model.OrderItem, error) {
	lines := make([]model.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		var item model.MenuItem
		if err := database.DB.Where("id = ? AND available = ?", in.MenuItemID, true).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("menu item %d is not on the menu", in.MenuItemID)
			}
			return nil, err
		}
		lines = append(lines, model.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   in.Quantity,
		})
	}
	return lines, nil
}

// mutableOrder rejects item mutations once an order left the pending, unpaid
// stage. Writes the response itself when it returns false.
func mutableOrder(c *fiber.Ctx, order *model.Order) bool {
	if order.Status != model.StatusPending || order.PaymentID != nil {
		utils.ErrorResponse(c, fiber.StatusConflict, "Order can no longer be modified", nil)
		return false
	}
	return true
}

// canTouchOrder allows staff everywhere and customers only on their own
// orders. Writes the response itself when it returns false.
func canTouchOrder(c *fiber.Ctx, order *model.Order) bool {
	if customer, err := helper.GetCustomerFromToken(c); err == nil {
		if order.CustomerID == nil || *order.CustomerID != customer.ID {
			utils.ErrorResponse(c, fiber.StatusForbidden, "Not your order", nil)
			return false
		}
		return true
	}
	if _, err := helper.GetCashierFromToken(c); err == nil {
		return true
	}
	utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", nil)
	return false
}

// CreateOnlineOrder is the customer-facing delivery intake: build the order,
// price it with the customer's current loyalty flags, leave the status at
// PENDING until the payment settles.
func CreateOnlineOrder(c *fiber.Ctx) error {
	customer, err := helper.GetCustomerFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", err)
	}

	input, ok := c.Locals("CreateOrder").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	address := customer.Address
	if input.DeliveryAddress != nil && *input.DeliveryAddress != "" {
		address = *input.DeliveryAddress
	}
	if address == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Delivery address is required", nil)
	}

	lines, err := buildLines(input.Items)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid order items", err)
	}

	order, err := model.NewOrder(helper.NextOrderID(), &customer.ID, lines, model.OnlineDelivery, nil)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not create order", err)
	}
	order.DeliveryAddress = utils.StringPtr(address)
	order.Reprice(customer.IsElite, customer.HasActiveSubscription())

	if err := database.DB.Create(order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	PublishOrderStatus(order)
	utils.SendOrderConfirmationEmail(customer.Email, confirmationData(order, address))

	return utils.SuccessResponse(c, fiber.StatusCreated, order.Summary())
}

func confirmationData(order *model.Order, address string) utils.OrderConfirmationData {
	items := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, fmt.Sprintf("  - %s x%d = EGP %.2f", it.Name, it.Quantity, it.LineTotal()))
	}
	return utils.OrderConfirmationData{
		OrderCode:       order.PublicCode,
		Items:           items,
		Subtotal:        order.Subtotal,
		Discount:        order.DiscountAmount,
		Total:           order.Total,
		DeliveryAddress: address,
	}
}

// CreateCounterOrder is the cashier intake for takeaway and dine-in. Dine-in
// grants the table and bumps the customer's dine-in counter before pricing;
// both counter modes are marked COMPLETE at intake (order placed = served).
func CreateCounterOrder(c *fiber.Ctx) error {
	if _, ok := GetCashierOr403(c); !ok {
		return nil
	}

	input, ok := c.Locals("CounterOrder").(model.CounterOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	customer, err := helper.GetCustomerByUsername(input.CustomerCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", nil)
	}

	mode := model.FulfilmentMode(input.OrderType)

	var table *model.Table
	if mode == model.DineIn {
		granted, err := Tables.Grant(*input.TableNumber)
		if err != nil {
			if errors.Is(err, model.ErrTableUnavailable) {
				return utils.ErrorResponse(c, fiber.StatusConflict, "Table is already occupied", err)
			}
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Table does not exist", err)
		}
		persistTableStatus(granted)
		table = granted
	}

	// any failure from here on must hand the granted table back
	committed := false
	defer func() {
		if !committed && table != nil {
			if released, err := Tables.Release(table.Number); err == nil {
				persistTableStatus(released)
			}
		}
	}()

	lines, err := buildLines(input.Items)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid order items", err)
	}

	order, err := model.NewCounterOrder(helper.NextOrderID(), customer, lines, mode, table, func() {
		if err := helper.IncrementDineInCount(customer); err != nil {
			log.Printf("dine-in count update failed for %s: %v", customer.PublicCode, err)
		}
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not create order", err)
	}

	if err := database.DB.Create(order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	committed = true

	PublishOrderStatus(order)

	return utils.SuccessResponse(c, fiber.StatusCreated, order.Summary())
}

func GetMyOrders(c *fiber.Ctx) error {
	customer, err := helper.GetCustomerFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", err)
	}

	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 1)

	var orders []model.Order
	query := database.DB.
		Preload("Items").
		Preload("Payment").
		Where("customer_id = ?", customer.ID).
		Order("created_at desc")
	query = utils.ApplyPagination(query, &limit, &page)
	if err := query.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load orders", err)
	}

	var total int64
	database.DB.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&total)

	summaries := make([]model.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orders[i].Summary())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       summaries,
		Limit:      &limit,
		Page:       &page,
		TotalCount: total,
	})
}

func GetOrderByCode(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order.Summary())
}

// GetOrderReceipt returns the summary plus a QR of the order code for pickup
// or check-in scanning
func GetOrderReceipt(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}

	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(order.PublicCode, 400); err != nil {
		log.Printf("QR generation failed for %s: %v", order.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"receipt": order.Summary(),
		"qrCode":  qrBase64,
	})
}

// AddOrderItem merges quantity into an existing line or appends a new one.
// Subtotal persists immediately; discount and total stay stale until a
// reprice, which mirrors the engine's pricing protocol.
func AddOrderItem(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	if !canTouchOrder(c, order) {
		return nil
	}
	if !mutableOrder(c, order) {
		return nil
	}

	input, ok := c.Locals("AddItem").(model.OrderItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	var menuItem model.MenuItem
	if err := database.DB.Where("id = ? AND available = ?", input.MenuItemID, true).
		First(&menuItem).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Menu item not found", err)
	}

	if err := order.AddItem(menuItem, input.Quantity); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not add item", err)
	}

	if err := persistLines(order); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order.Summary())
}

func UpdateOrderItem(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	if !canTouchOrder(c, order) {
		return nil
	}
	if !mutableOrder(c, order) {
		return nil
	}

	input, ok := c.Locals("MutateItem").(model.MutateItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	menuItemID, _ := c.Locals("itemId").(uint)

	if err := order.UpdateQuantity(menuItemID, input.Quantity); err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Item not in order", err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not update quantity", err)
	}

	if err := persistLines(order); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order.Summary())
}

func RemoveOrderItem(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	if !canTouchOrder(c, order) {
		return nil
	}
	if !mutableOrder(c, order) {
		return nil
	}

	menuItemID, _ := c.Locals("itemId").(uint)

	if err := order.RemoveItem(menuItemID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Item not in order", err)
	}

	if err := persistLines(order); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order.Summary())
}

// persistLines replaces the stored lines with the engine's state and writes
// the refreshed subtotal, atomically
func persistLines(order *model.Order) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = order.ID
		}
		if len(order.Items) > 0 {
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("subtotal", order.Subtotal).Error
	})
}

// RepriceOrder reruns the subtotal → discount → total pipeline with the
// customer's current loyalty flags
func RepriceOrder(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	if !canTouchOrder(c, order) {
		return nil
	}

	isElite, active := false, false
	if order.Customer != nil {
		isElite = order.Customer.IsElite
		active = order.Customer.HasActiveSubscription()
	}
	order.Reprice(isElite, active)

	if err := database.DB.Model(&model.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"subtotal":        order.Subtotal,
			"discount_amount": order.DiscountAmount,
			"total":           order.Total,
		}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order.Summary())
}

// CancelOrder moves the order to CANCELLED and frees its table for dine-in
func CancelOrder(c *fiber.Ctx) error {
	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_NOT_FOUND, err)
	}
	if !canTouchOrder(c, order) {
		return nil
	}

	if err := order.UpdateStatus(model.StatusCancelled); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not cancel order", err)
	}
	now := time.Now()
	order.CancelledAt = &now

	if err := database.DB.Model(&model.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":       order.Status,
			"cancelled_at": order.CancelledAt,
		}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.Mode == model.DineIn && order.TableNumber != nil {
		if released, err := Tables.Release(*order.TableNumber); err == nil {
			persistTableStatus(released)
		}
	}

	PublishOrderStatus(order)
	return utils.SuccessResponse(c, fiber.StatusOK, order.Summary())
}
