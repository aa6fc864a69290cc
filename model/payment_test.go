package model

import "testing"

func pricedOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(1, nil, cartLines(), OnlineDelivery, nil)
	if err != nil {
		t.Fatal(err)
	}
	o.ApplyEliteDiscount(true, true)
	o.CalculateTotal() // 108.0
	return o
}

func TestSettlePayment(t *testing.T) {
	tests := []struct {
		name     string
		tendered float64
		wantOK   bool
		want     Status
	}{
		{"exact amount succeeds", 108.0, true, StatusComplete},
		{"overpayment succeeds", 120.0, true, StatusComplete},
		{"one short fails", 107.99, false, StatusFailed},
		{"well short fails", 100.0, false, StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := pricedOrder(t)
			p, ok := SettlePayment(o, tt.tendered, PaymentCash)

			if ok != tt.wantOK {
				t.Errorf("SettlePayment() ok = %v, want %v", ok, tt.wantOK)
			}
			if p.Status != tt.want {
				t.Errorf("payment status = %v, want %v", p.Status, tt.want)
			}
			if p.Amount != tt.tendered {
				t.Errorf("payment amount = %v, want %v", p.Amount, tt.tendered)
			}
			if p.OrderID != o.ID {
				t.Errorf("payment order id = %d, want %d", p.OrderID, o.ID)
			}
		})
	}
}

func TestSettlePaymentDoesNotMutateOrder(t *testing.T) {
	o := pricedOrder(t)
	before := *o

	SettlePayment(o, 10.0, PaymentCard)

	if o.Status != before.Status || o.Total != before.Total || o.Payment != nil {
		t.Error("SettlePayment must not mutate the order")
	}
}

func TestFailedSettlementDrivesOrderFailed(t *testing.T) {
	o := pricedOrder(t)
	p, ok := SettlePayment(o, 100.0, PaymentCash)
	if ok {
		t.Fatal("expected failed settlement")
	}

	// the intake caller attaches the result and moves the status
	o.AttachPayment(p)
	if err := o.UpdateStatus(StatusFailed); err != nil {
		t.Fatalf("UpdateStatus(FAILED) error = %v", err)
	}
	if o.Status != StatusFailed {
		t.Errorf("status = %v, want FAILED", o.Status)
	}
}

func TestChange(t *testing.T) {
	o := pricedOrder(t)

	paid, _ := SettlePayment(o, 150.0, PaymentCash)
	if got := paid.Change(o.Total); got != 42.0 {
		t.Errorf("change = %v, want 42.0", got)
	}

	failed, _ := SettlePayment(o, 50.0, PaymentCash)
	if got := failed.Change(o.Total); got != 0 {
		t.Errorf("change on failed payment = %v, want 0", got)
	}
}
