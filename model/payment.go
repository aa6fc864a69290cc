package model

import "github.com/google/uuid"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// Payment is one settlement attempt against an order. Immutable once created.
type Payment struct {
	DTO
	OrderID     int           `gorm:"not null" json:"orderId"`
	Amount      float64       `gorm:"not null" json:"amount"`
	PaymentCode string        `gorm:"unique" json:"paymentCode"`
	Status      Status        `json:"status"`
	Method      PaymentMethod `json:"method"`
}

type CreatePaymentInput struct {
	OrderCode string  `json:"orderCode" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=CASH CARD"`
}

// SettlePayment validates the tendered amount against the order total and
// builds the settlement record. It never mutates the order: attaching the
// payment and moving the status is the caller's job. The outcome is Complete
// when tendered covers the total (tendered >= total), Failed otherwise.
func SettlePayment(o *Order, tendered float64, method PaymentMethod) (*Payment, bool) {
	success := tendered >= o.Total
	status := StatusComplete
	if !success {
		status = StatusFailed
	}
	return &Payment{
		OrderID:     o.ID,
		Amount:      tendered,
		PaymentCode: "PAY-" + uuid.New().String()[:8],
		Status:      status,
		Method:      method,
	}, success
}

// Change is what the customer gets back on an over-tendered cash settlement
func (p *Payment) Change(total float64) float64 {
	if p.Status != StatusComplete || p.Amount <= total {
		return 0
	}
	return p.Amount - total
}
