package model

import (
	"errors"
	"testing"
)

func burger() MenuItem {
	return MenuItem{DTO: DTO{ID: 1}, Name: "Burger", Price: 50.0}
}

func fries() MenuItem {
	return MenuItem{DTO: DTO{ID: 2}, Name: "Fries", Price: 20.0}
}

func soda() MenuItem {
	return MenuItem{DTO: DTO{ID: 3}, Name: "Soda", Price: 10.0}
}

func cartLines() []OrderItem {
	return []OrderItem{
		{MenuItemID: 1, Name: "Burger", UnitPrice: 50.0, Quantity: 2},
		{MenuItemID: 2, Name: "Fries", UnitPrice: 20.0, Quantity: 1},
	}
}

func TestNewOrderComputesSubtotal(t *testing.T) {
	o, err := NewOrder(1, nil, cartLines(), Takeaway, nil)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if o.Subtotal != 120.0 {
		t.Errorf("subtotal = %v, want 120.0", o.Subtotal)
	}
	if o.Status != StatusPending {
		t.Errorf("status = %v, want %v", o.Status, StatusPending)
	}
	if o.DiscountAmount != 0 || o.Total != 0 {
		t.Errorf("discount/total should stay zero until repriced, got %v/%v", o.DiscountAmount, o.Total)
	}
}

func TestNewOrderRejectsEmptyCart(t *testing.T) {
	if _, err := NewOrder(1, nil, nil, Takeaway, nil); !errors.Is(err, ErrInvalidItems) {
		t.Errorf("NewOrder(empty) error = %v, want ErrInvalidItems", err)
	}
	if _, err := NewOrder(1, nil, []OrderItem{}, Takeaway, nil); !errors.Is(err, ErrInvalidItems) {
		t.Errorf("NewOrder(empty slice) error = %v, want ErrInvalidItems", err)
	}
}

func TestNewOrderRejectsNonPositiveQuantity(t *testing.T) {
	lines := []OrderItem{{MenuItemID: 1, Name: "Burger", UnitPrice: 50.0, Quantity: 0}}
	if _, err := NewOrder(1, nil, lines, Takeaway, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("NewOrder(qty 0) error = %v, want ErrInvalidQuantity", err)
	}
}

func TestNewOrderSnapshotsCart(t *testing.T) {
	lines := cartLines()
	o, err := NewOrder(1, nil, lines, Takeaway, nil)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}

	// mutating the caller's slice must not leak into the order
	lines[0].Quantity = 99
	o.CalculateSubtotal()
	if o.Subtotal != 120.0 {
		t.Errorf("subtotal after caller mutation = %v, want 120.0", o.Subtotal)
	}
}

func TestNewOrderDineInTakesTableNumber(t *testing.T) {
	table := &Table{Number: 4, Capacity: 2, Status: TableAvailable}
	o, err := NewOrder(1, nil, cartLines(), DineIn, table)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if o.TableNumber == nil || *o.TableNumber != 4 {
		t.Errorf("table number = %v, want 4", o.TableNumber)
	}
}

func TestCalculateSubtotalIdempotent(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	first := o.Subtotal
	o.CalculateSubtotal()
	o.CalculateSubtotal()
	if o.Subtotal != first {
		t.Errorf("repeated CalculateSubtotal changed value: %v -> %v", first, o.Subtotal)
	}
}

func TestAddItem(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)

	// new line
	if err := o.AddItem(soda(), 3); err != nil {
		t.Fatalf("AddItem(new) error = %v", err)
	}
	if len(o.Items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(o.Items))
	}
	if o.Subtotal != 150.0 {
		t.Errorf("subtotal = %v, want 150.0", o.Subtotal)
	}

	// existing line merges quantities
	if err := o.AddItem(burger(), 1); err != nil {
		t.Fatalf("AddItem(existing) error = %v", err)
	}
	if len(o.Items) != 3 {
		t.Errorf("len(items) = %d after merge, want 3", len(o.Items))
	}
	if o.Subtotal != 200.0 {
		t.Errorf("subtotal = %v, want 200.0", o.Subtotal)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	before := o.Subtotal

	for _, qty := range []int{0, -1} {
		if err := o.AddItem(soda(), qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("AddItem(qty %d) error = %v, want ErrInvalidQuantity", qty, err)
		}
	}
	if len(o.Items) != 2 || o.Subtotal != before {
		t.Error("rejected AddItem must leave the order unchanged")
	}
}

func TestAddItemDoesNotTouchDiscountOrTotal(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	o.ApplyEliteDiscount(true, true)
	o.CalculateTotal()
	discount, total := o.DiscountAmount, o.Total

	if err := o.AddItem(soda(), 1); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	// stale on purpose until the caller reprices
	if o.DiscountAmount != discount || o.Total != total {
		t.Errorf("AddItem must not recompute discount/total, got %v/%v", o.DiscountAmount, o.Total)
	}
}

func TestRemoveItem(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)

	if err := o.RemoveItem(2); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if len(o.Items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(o.Items))
	}
	if o.Subtotal != 100.0 {
		t.Errorf("subtotal = %v, want 100.0", o.Subtotal)
	}

	if err := o.RemoveItem(42); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("RemoveItem(absent) error = %v, want ErrItemNotFound", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name         string
		menuItemID   uint
		quantity     int
		wantErr      error
		wantSubtotal float64
	}{
		{"replaces quantity", 1, 5, nil, 270.0},
		{"not added to", 2, 2, nil, 140.0},
		{"zero rejected", 1, 0, ErrInvalidQuantity, 120.0},
		{"negative rejected", 1, -3, ErrInvalidQuantity, 120.0},
		{"absent item rejected", 99, 2, ErrItemNotFound, 120.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
			err := o.UpdateQuantity(tt.menuItemID, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateQuantity() error = %v, want %v", err, tt.wantErr)
			}
			if o.Subtotal != tt.wantSubtotal {
				t.Errorf("subtotal = %v, want %v", o.Subtotal, tt.wantSubtotal)
			}
			if err != nil && len(o.Items) != 2 {
				t.Error("failed UpdateQuantity must leave the cart unchanged")
			}
		})
	}
}

func TestApplyEliteDiscount(t *testing.T) {
	tests := []struct {
		name         string
		isElite      bool
		active       bool
		wantDiscount float64
		wantTotal    float64
	}{
		{"elite with active subscription", true, true, 12.0, 108.0},
		{"elite with expired subscription", true, false, 0.0, 120.0},
		{"not elite but active", false, true, 0.0, 120.0},
		{"neither", false, false, 0.0, 120.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
			o.ApplyEliteDiscount(tt.isElite, tt.active)
			o.CalculateTotal()
			if o.DiscountAmount != tt.wantDiscount {
				t.Errorf("discount = %v, want %v", o.DiscountAmount, tt.wantDiscount)
			}
			if o.Total != tt.wantTotal {
				t.Errorf("total = %v, want %v", o.Total, tt.wantTotal)
			}
		})
	}
}

func TestTotalBeforeDiscountEqualsSubtotal(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	o.CalculateTotal()
	if o.Total != o.Subtotal {
		t.Errorf("total before discount = %v, want subtotal %v", o.Total, o.Subtotal)
	}
}

func TestTotalInvariantAfterMutations(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	if err := o.AddItem(soda(), 2); err != nil {
		t.Fatal(err)
	}
	if err := o.UpdateQuantity(1, 3); err != nil {
		t.Fatal(err)
	}
	o.ApplyEliteDiscount(true, true)
	o.CalculateTotal()

	if got := o.Subtotal - o.DiscountAmount; o.Total != got {
		t.Errorf("total = %v, want subtotal-discount = %v", o.Total, got)
	}
	if o.Subtotal != 190.0 || o.DiscountAmount != 19.0 || o.Total != 171.0 {
		t.Errorf("got %v/%v/%v, want 190/19/171", o.Subtotal, o.DiscountAmount, o.Total)
	}
}

func TestReprice(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	o.Items[0].Quantity = 4 // simulate a persisted mutation
	o.Reprice(true, true)

	if o.Subtotal != 220.0 {
		t.Errorf("subtotal = %v, want 220.0", o.Subtotal)
	}
	if o.DiscountAmount != 22.0 {
		t.Errorf("discount = %v, want 22.0", o.DiscountAmount)
	}
	if o.Total != 198.0 {
		t.Errorf("total = %v, want 198.0", o.Total)
	}
}

func TestUpdateStatusPermissive(t *testing.T) {
	statuses := []Status{StatusPending, StatusComplete, StatusFailed, StatusCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
			o.Status = from
			if err := o.UpdateStatus(to); err != nil {
				t.Errorf("UpdateStatus(%s -> %s) error = %v, want nil", from, to, err)
			}
			if o.Status != to {
				t.Errorf("status = %v, want %v", o.Status, to)
			}
		}
	}
}

func TestUpdateStatusUnknown(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	if err := o.UpdateStatus(Status("SHIPPED")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("UpdateStatus(unknown) error = %v, want ErrUnknownStatus", err)
	}
	if o.Status != StatusPending {
		t.Errorf("status = %v, want unchanged PENDING", o.Status)
	}
}

func TestUpdateStatusDisallowedTransition(t *testing.T) {
	// tighten the table for the duration of the test: cancelled is terminal
	orig := allowedTransitions[StatusCancelled]
	allowedTransitions[StatusCancelled] = []Status{StatusCancelled}
	defer func() { allowedTransitions[StatusCancelled] = orig }()

	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	o.Status = StatusCancelled
	if err := o.UpdateStatus(StatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("UpdateStatus(cancelled -> pending) error = %v, want ErrInvalidTransition", err)
	}
	if o.Status != StatusCancelled {
		t.Errorf("status = %v, want unchanged CANCELLED", o.Status)
	}

	// unknown statuses keep their own error
	if err := o.UpdateStatus(Status("SHIPPED")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("UpdateStatus(unknown) error = %v, want ErrUnknownStatus", err)
	}
}

func eliteCustomer() *Customer {
	return &Customer{
		DTO:                DTO{ID: 7},
		IsElite:            true,
		SubscriptionActive: true,
		MonthsRemaining:    1,
	}
}

func TestNewCounterOrderDineIn(t *testing.T) {
	credits := 0
	table := &Table{Number: 2, Capacity: 4, Status: TableOccupied}

	o, err := NewCounterOrder(1, eliteCustomer(), cartLines(), DineIn, table, func() { credits++ })
	if err != nil {
		t.Fatalf("NewCounterOrder() error = %v", err)
	}
	if credits != 1 {
		t.Errorf("credits = %d, want exactly 1 per initiated dine-in order", credits)
	}
	if o.Status != StatusComplete {
		t.Errorf("status = %v, want COMPLETE at intake", o.Status)
	}
	if o.Subtotal != 120.0 || o.DiscountAmount != 12.0 || o.Total != 108.0 {
		t.Errorf("priced %v/%v/%v, want 120/12/108", o.Subtotal, o.DiscountAmount, o.Total)
	}
	if o.TableNumber == nil || *o.TableNumber != 2 {
		t.Errorf("table number = %v, want 2", o.TableNumber)
	}
}

func TestNewCounterOrderRejectedCartEarnsNoCredit(t *testing.T) {
	credits := 0
	table := &Table{Number: 2, Capacity: 4, Status: TableOccupied}

	if _, err := NewCounterOrder(1, eliteCustomer(), nil, DineIn, table, func() { credits++ }); !errors.Is(err, ErrInvalidItems) {
		t.Fatalf("NewCounterOrder(empty) error = %v, want ErrInvalidItems", err)
	}
	badQty := []OrderItem{{MenuItemID: 1, Name: "Burger", UnitPrice: 50.0, Quantity: 0}}
	if _, err := NewCounterOrder(1, eliteCustomer(), badQty, DineIn, table, func() { credits++ }); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("NewCounterOrder(qty 0) error = %v, want ErrInvalidQuantity", err)
	}
	if credits != 0 {
		t.Errorf("credits = %d, want 0 for rejected carts", credits)
	}
}

func TestNewCounterOrderTakeawayNeverCredits(t *testing.T) {
	credits := 0
	o, err := NewCounterOrder(1, eliteCustomer(), cartLines(), Takeaway, nil, func() { credits++ })
	if err != nil {
		t.Fatalf("NewCounterOrder() error = %v", err)
	}
	if credits != 0 {
		t.Errorf("credits = %d, want 0 for takeaway", credits)
	}
	if o.Status != StatusComplete {
		t.Errorf("status = %v, want COMPLETE at intake", o.Status)
	}
}

func TestAttachPaymentIsPureSetter(t *testing.T) {
	o, _ := NewOrder(1, nil, cartLines(), Takeaway, nil)
	o.Reprice(false, false)

	p, ok := SettlePayment(o, 100.0, PaymentCash)
	if ok {
		t.Fatal("settlement of 100.0 against 120.0 should fail")
	}
	o.AttachPayment(p)

	if o.Payment != p {
		t.Error("payment not attached")
	}
	// status consequence belongs to the caller, not AttachPayment
	if o.Status != StatusPending {
		t.Errorf("AttachPayment changed status to %v", o.Status)
	}
}

func TestSummary(t *testing.T) {
	addr := "12 Nile St"
	o, _ := NewOrder(7, nil, cartLines(), OnlineDelivery, nil)
	o.DeliveryAddress = &addr
	o.Reprice(true, true)

	s := o.Summary()
	if s.OrderID != 7 {
		t.Errorf("summary order id = %d, want 7", s.OrderID)
	}
	if len(s.Lines) != 2 {
		t.Fatalf("summary lines = %d, want 2", len(s.Lines))
	}
	if s.Lines[0].LineTotal != 100.0 {
		t.Errorf("line total = %v, want 100.0", s.Lines[0].LineTotal)
	}
	if s.Subtotal != 120.0 || s.Discount != 12.0 || s.Total != 108.0 {
		t.Errorf("summary amounts = %v/%v/%v, want 120/12/108", s.Subtotal, s.Discount, s.Total)
	}
	if s.DeliveryAddress == nil || *s.DeliveryAddress != addr {
		t.Error("summary missing delivery address")
	}
	if s.TableNumber != nil {
		t.Error("delivery order summary should have no table number")
	}
}
