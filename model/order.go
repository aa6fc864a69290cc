package model

import (
	"math"
	"time"

	"restaurant_pos/constants"

	"github.com/google/uuid"
)

// Status is shared by orders and payments
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusComplete  Status = "COMPLETE"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions lists the legal next statuses for each status. Every
// pair is currently legal; tightening the lifecycle is a table edit here.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusComplete, StatusFailed, StatusCancelled},
	StatusComplete:  {StatusPending, StatusComplete, StatusFailed, StatusCancelled},
	StatusFailed:    {StatusPending, StatusComplete, StatusFailed, StatusCancelled},
	StatusCancelled: {StatusPending, StatusComplete, StatusFailed, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FulfilmentMode is the channel an order is placed and served through
type FulfilmentMode string

const (
	OnlineDelivery FulfilmentMode = "ONLINE_DELIVERY"
	Takeaway       FulfilmentMode = "TAKEAWAY"
	DineIn         FulfilmentMode = "DINE_IN"
)

// OrderItem is one line of an order. Name and UnitPrice are copied from the
// menu at order time so later menu edits cannot change a placed order.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    int     `json:"orderId"`
	MenuItemID uint    `gorm:"not null" json:"menuItemId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}

func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

type Order struct {
	ID              int            `gorm:"primaryKey" json:"id"`
	PublicCode      string         `gorm:"unique;size:20" json:"orderCode"`
	CustomerID      *uint          `json:"customerId,omitempty"`
	Customer        *Customer      `json:"customer,omitempty"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal        float64        `json:"subtotal"`
	DiscountAmount  float64        `json:"discountAmount"`
	Total           float64        `json:"total"`
	Status          Status         `json:"status"`
	Mode            FulfilmentMode `gorm:"column:order_type" json:"orderType"`
	TableNumber     *int           `json:"tableNumber,omitempty"`
	DeliveryAddress *string        `json:"deliveryAddress,omitempty"`
	PaymentID       *uint          `json:"-"`
	Payment         *Payment       `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	CancelledAt     *time.Time     `json:"cancelledAt,omitempty"`
}

// NewOrder builds an order from a cart snapshot. The id comes from the
// process-wide sequence and is assigned before persistence. The items slice
// is copied, so the caller's cart can be reused afterwards. Subtotal is
// computed immediately; discount and total stay zero until Reprice or the
// explicit ApplyEliteDiscount/CalculateTotal pair runs.
func NewOrder(id int, customerID *uint, items []OrderItem, mode FulfilmentMode, table *Table) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidItems
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	o := &Order{
		ID:         id,
		PublicCode: "ORD-" + uuid.New().String()[:8],
		CustomerID: customerID,
		Mode:       mode,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
	o.Items = make([]OrderItem, len(items))
	copy(o.Items, items)
	for i := range o.Items {
		o.Items[i].OrderID = id
	}
	if mode == DineIn && table != nil {
		n := table.Number
		o.TableNumber = &n
	}
	o.CalculateSubtotal()
	return o, nil
}

// NewCounterOrder assembles a cashier-intake order: construct, credit the
// dine-in visit, price, mark complete ("order placed = served"). The credit
// callback runs only for dine-in and only after construction succeeded, so a
// rejected cart never earns a loyalty visit, and it runs before pricing
// because the visit count feeds elite eligibility independent of this
// order's discount.
func NewCounterOrder(id int, customer *Customer, items []OrderItem, mode FulfilmentMode, table *Table, credit func()) (*Order, error) {
	o, err := NewOrder(id, &customer.ID, items, mode, table)
	if err != nil {
		return nil, err
	}
	if mode == DineIn && credit != nil {
		credit()
	}
	o.Reprice(customer.IsElite, customer.HasActiveSubscription())
	if err := o.UpdateStatus(StatusComplete); err != nil {
		return nil, err
	}
	return o, nil
}

// AddItem adds quantity of a menu item, merging with an existing line.
// Subtotal refreshes immediately; discount and total stay stale until the
// caller reprices.
func (o *Order) AddItem(item MenuItem, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range o.Items {
		if o.Items[i].MenuItemID == item.ID {
			o.Items[i].Quantity += quantity
			o.CalculateSubtotal()
			return nil
		}
	}
	o.Items = append(o.Items, OrderItem{
		OrderID:    o.ID,
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   quantity,
	})
	o.CalculateSubtotal()
	return nil
}

// RemoveItem drops the line for a menu item entirely
func (o *Order) RemoveItem(menuItemID uint) error {
	for i := range o.Items {
		if o.Items[i].MenuItemID == menuItemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.CalculateSubtotal()
			return nil
		}
	}
	return ErrItemNotFound
}

// UpdateQuantity replaces (does not add to) the stored quantity
func (o *Order) UpdateQuantity(menuItemID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range o.Items {
		if o.Items[i].MenuItemID == menuItemID {
			o.Items[i].Quantity = quantity
			o.CalculateSubtotal()
			return nil
		}
	}
	return ErrItemNotFound
}

// CalculateSubtotal recomputes the subtotal from the lines. Idempotent.
func (o *Order) CalculateSubtotal() {
	subtotal := 0.0
	for _, it := range o.Items {
		subtotal += it.LineTotal()
	}
	o.Subtotal = subtotal
}

// ApplyEliteDiscount sets the discount to 10% of the subtotal when the
// customer is elite and the subscription is still active, zero otherwise.
func (o *Order) ApplyEliteDiscount(isElite, isSubscriptionActive bool) {
	if isElite && isSubscriptionActive {
		o.DiscountAmount = o.Subtotal * constants.ELITE_DISCOUNT_RATE
	} else {
		o.DiscountAmount = 0
	}
}

// CalculateTotal must run after ApplyEliteDiscount for the discount to count
func (o *Order) CalculateTotal() {
	o.Total = o.Subtotal - o.DiscountAmount
}

// Reprice runs the full subtotal → discount → total pipeline
func (o *Order) Reprice(isElite, isSubscriptionActive bool) {
	o.CalculateSubtotal()
	o.ApplyEliteDiscount(isElite, isSubscriptionActive)
	o.CalculateTotal()
}

// UpdateStatus moves the order to next if the transition table allows it
func (o *Order) UpdateStatus(next Status) error {
	if _, known := allowedTransitions[next]; !known {
		return ErrUnknownStatus
	}
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next
	return nil
}

// AttachPayment links a settlement record to the order. It is a pure setter:
// the status consequence of the outcome belongs to the caller.
func (o *Order) AttachPayment(p *Payment) {
	o.Payment = p
	if p != nil && p.ID != 0 {
		o.PaymentID = &p.ID
	}
}

type OrderItemInput struct {
	MenuItemID uint `json:"menuItemId" validate:"required,gt=0"`
	Quantity   int  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput is the online-delivery intake payload
type CreateOrderInput struct {
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress *string          `json:"deliveryAddress,omitempty"`
}

// CounterOrderInput is the cashier intake payload for takeaway and dine-in
type CounterOrderInput struct {
	CustomerCode string           `json:"customerCode" validate:"required"`
	OrderType    string           `json:"orderType" validate:"required,oneof=TAKEAWAY DINE_IN"`
	TableNumber  *int             `json:"tableNumber,omitempty"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type MutateItemInput struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// SummaryLine is one rendered receipt line
type SummaryLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// OrderSummary is everything a receipt or confirmation screen needs, with
// amounts rounded to the currency's minor unit for display
type OrderSummary struct {
	OrderID         int            `json:"orderId"`
	OrderCode       string         `json:"orderCode"`
	Date            string         `json:"date"`
	Mode            FulfilmentMode `json:"orderType"`
	CustomerID      *uint          `json:"customerId,omitempty"`
	Lines           []SummaryLine  `json:"items"`
	Subtotal        float64        `json:"subtotal"`
	Discount        float64        `json:"discount"`
	Total           float64        `json:"total"`
	Status          Status         `json:"status"`
	DeliveryAddress *string        `json:"deliveryAddress,omitempty"`
	TableNumber     *int           `json:"tableNumber,omitempty"`
	PaymentStatus   *Status        `json:"paymentStatus,omitempty"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary projects the order for a presentation layer
func (o *Order) Summary() OrderSummary {
	lines := make([]SummaryLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, SummaryLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: round2(it.LineTotal()),
		})
	}
	s := OrderSummary{
		OrderID:         o.ID,
		OrderCode:       o.PublicCode,
		Date:            o.CreatedAt.Format("2006-01-02 15:04:05"),
		Mode:            o.Mode,
		CustomerID:      o.CustomerID,
		Lines:           lines,
		Subtotal:        round2(o.Subtotal),
		Discount:        round2(o.DiscountAmount),
		Total:           round2(o.Total),
		Status:          o.Status,
		DeliveryAddress: o.DeliveryAddress,
		TableNumber:     o.TableNumber,
	}
	if o.Payment != nil {
		status := o.Payment.Status
		s.PaymentStatus = &status
	}
	return s
}
