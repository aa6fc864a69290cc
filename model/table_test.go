package model

import (
	"errors"
	"sync"
	"testing"
)

func testRegistry() *TableRegistry {
	return NewTableRegistry([]*Table{
		{Number: 1, Capacity: 2, Status: TableAvailable},
		{Number: 2, Capacity: 4, Status: TableOccupied},
		{Number: 3, Capacity: 6, Status: TableAvailable},
	})
}

func TestAvailableKeepsRegistryOrder(t *testing.T) {
	r := testRegistry()
	got := r.Available()
	if len(got) != 2 {
		t.Fatalf("len(available) = %d, want 2", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 3 {
		t.Errorf("available order = [%d %d], want [1 3]", got[0].Number, got[1].Number)
	}
}

func TestAvailableEmptyIsNotAnError(t *testing.T) {
	r := NewTableRegistry([]*Table{
		{Number: 1, Capacity: 2, Status: TableOccupied},
	})
	if got := r.Available(); len(got) != 0 {
		t.Errorf("available = %v, want empty", got)
	}
}

func TestGrant(t *testing.T) {
	r := testRegistry()

	granted, err := r.Grant(1)
	if err != nil {
		t.Fatalf("Grant(available) error = %v", err)
	}
	if granted.Status != TableOccupied {
		t.Errorf("granted table status = %v, want OCCUPIED", granted.Status)
	}

	// second grant on the same table must always be rejected
	if _, err := r.Grant(1); !errors.Is(err, ErrTableUnavailable) {
		t.Errorf("Grant(occupied) error = %v, want ErrTableUnavailable", err)
	}

	if _, err := r.Grant(42); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Grant(unknown) error = %v, want ErrTableNotFound", err)
	}
}

func TestGrantFailureHasNoSideEffect(t *testing.T) {
	r := testRegistry()
	if _, err := r.Grant(2); !errors.Is(err, ErrTableUnavailable) {
		t.Fatalf("Grant(occupied) error = %v", err)
	}
	for _, table := range r.All() {
		if table.Number == 2 && table.Status != TableOccupied {
			t.Errorf("failed grant mutated table 2 to %v", table.Status)
		}
	}
}

func TestReleaseIsLenient(t *testing.T) {
	r := testRegistry()

	released, err := r.Release(2)
	if err != nil {
		t.Fatalf("Release(occupied) error = %v", err)
	}
	if released.Status != TableAvailable {
		t.Errorf("status = %v, want AVAILABLE", released.Status)
	}

	// releasing an already-available table is fine
	if _, err := r.Release(2); err != nil {
		t.Errorf("Release(available) error = %v, want nil", err)
	}

	if _, err := r.Release(42); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Release(unknown) error = %v, want ErrTableNotFound", err)
	}
}

func TestConcurrentGrantSingleWinner(t *testing.T) {
	r := testRegistry()

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Grant(3); err == nil {
				wins <- 1
			}
		}()
	}
	wg.Wait()
	close(wins)

	total := 0
	for range wins {
		total++
	}
	if total != 1 {
		t.Errorf("concurrent grants succeeded %d times, want exactly 1", total)
	}
}
