package helper

import (
	"fmt"
	"log"
	"sync/atomic"

	"restaurant_pos/database"
	"restaurant_pos/model"
)

// Sequence hands out strictly increasing ids, safe for concurrent handlers
type Sequence struct {
	n int64
}

// NewSequence starts issuing at last+1
func NewSequence(last int) *Sequence {
	return &Sequence{n: int64(last)}
}

func (s *Sequence) Next() int {
	return int(atomic.AddInt64(&s.n, 1))
}

var (
	orderSeq    *Sequence
	customerSeq *Sequence
	cashierSeq  *Sequence
)

// InitSequences loads the counters from persisted state so ids keep growing
// across restarts instead of living in a static
func InitSequences() {
	db := database.DB

	// a silent zero here would restart ids at 1 and collide with existing
	// rows, so a load failure stops the boot
	var lastOrder int
	if err := db.Model(&model.Order{}).Select("COALESCE(MAX(id), 0)").Scan(&lastOrder).Error; err != nil {
		log.Fatalf("failed to load order id sequence: %v", err)
	}
	orderSeq = NewSequence(lastOrder)

	var customers, cashiers int64
	if err := db.Model(&model.Customer{}).Count(&customers).Error; err != nil {
		log.Fatalf("failed to load customer code sequence: %v", err)
	}
	if err := db.Model(&model.Cashier{}).Count(&cashiers).Error; err != nil {
		log.Fatalf("failed to load cashier code sequence: %v", err)
	}
	customerSeq = NewSequence(int(customers))
	cashierSeq = NewSequence(int(cashiers))

	log.Printf("sequences ready: next order id %d", lastOrder+1)
}

// NextOrderID assigns the next order id, 1-based, never reused
func NextOrderID() int {
	return orderSeq.Next()
}

func NextCustomerCode() string {
	return fmt.Sprintf("CUST%03d", customerSeq.Next())
}

func NextCashierCode() string {
	return fmt.Sprintf("CH%03d", cashierSeq.Next())
}
