package model

import "sync"

type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
)

// Table is a seating resource. Status only changes through the registry.
type Table struct {
	DTO
	Number   int         `gorm:"unique;not null" json:"number"`
	Capacity int         `gorm:"not null" json:"capacity"`
	Status   TableStatus `gorm:"default:AVAILABLE" json:"status"`
}

func (t *Table) IsAvailable() bool {
	return t.Status == TableAvailable
}

// TableRegistry owns occupancy for a fixed set of tables. Grant and Release
// are the only mutators of table status in the system, and they are safe to
// call from concurrent handlers.
type TableRegistry struct {
	mu     sync.Mutex
	tables []*Table
}

// NewTableRegistry keeps the given insertion order for listings
func NewTableRegistry(tables []*Table) *TableRegistry {
	return &TableRegistry{tables: tables}
}

// All returns a snapshot of every table
func (r *TableRegistry) All() []Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	return out
}

// Available returns the available tables in registry order. An empty result
// is not an error, it just means no availability.
func (r *TableRegistry) Available() []Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Table{}
	for _, t := range r.tables {
		if t.IsAvailable() {
			out = append(out, *t)
		}
	}
	return out
}

func (r *TableRegistry) find(number int) *Table {
	for _, t := range r.tables {
		if t.Number == number {
			return t
		}
	}
	return nil
}

// Grant marks the table occupied. Granting an occupied table always fails
// with ErrTableUnavailable and changes nothing.
func (r *TableRegistry) Grant(number int) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.find(number)
	if t == nil {
		return nil, ErrTableNotFound
	}
	if !t.IsAvailable() {
		return nil, ErrTableUnavailable
	}
	t.Status = TableOccupied
	return t, nil
}

// Release marks the table available regardless of its prior state. Releasing
// an already-available table is deliberately not an error.
func (r *TableRegistry) Release(number int) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.find(number)
	if t == nil {
		return nil, ErrTableNotFound
	}
	t.Status = TableAvailable
	return t, nil
}
