// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc_test

import (
	"errors"
	"sync"
	"testing"

	"code.hybscloud.com/mpsc"
)

// =============================================================================
// Teardown Semantics
// =============================================================================

// TestDrainEmpty verifies draining a fresh queue is a no-op.
func TestDrainEmpty(t *testing.T) {
	q := mpsc.NewQueue[int]()
	if got := q.Drain(); got != 0 {
		t.Fatalf("Drain on fresh queue: got %d, want 0", got)
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty after Drain: got false, want true")
	}
}

// TestDrainDiscardsAll verifies Drain releases every buffered element
// and leaves the queue empty and usable.
func TestDrainDiscardsAll(t *testing.T) {
	q := mpsc.NewQueue[[]byte]()

	const m = 500
	for range m {
		buf := make([]byte, 64)
		if err := q.Enqueue(&buf); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	if got := q.Drain(); got != m {
		t.Fatalf("Drain: got %d, want %d", got, m)
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty after Drain: got false, want true")
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("Len after Drain: got %d, want 0", got)
	}
	if _, err := q.Dequeue(); !errors.Is(err, mpsc.ErrWouldBlock) {
		t.Fatalf("Dequeue after Drain: got %v, want ErrWouldBlock", err)
	}

	// Still usable.
	buf := []byte("again")
	if err := q.Enqueue(&buf); err != nil {
		t.Fatalf("Enqueue after Drain: %v", err)
	}
	got, err := q.Dequeue()
	if err != nil || string(got) != "again" {
		t.Fatalf("Dequeue after Drain: got (%q, %v), want (again, nil)", got, err)
	}
}

// TestDrainAfterProducers drains a queue filled by concurrent
// producers that were never consumed from, the teardown scenario.
func TestDrainAfterProducers(t *testing.T) {
	if mpsc.RaceEnabled {
		t.Skip("skip: concurrent test uses atomix counters")
	}

	const numP = 8
	const itemsPerProd = 5000
	q := mpsc.New().Recycle().BuildIndirect()

	var wg sync.WaitGroup
	for range numP {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range itemsPerProd {
				q.Enqueue(uintptr(i + 1))
			}
		}()
	}
	wg.Wait()

	if got := q.Drain(); got != numP*itemsPerProd {
		t.Fatalf("Drain: got %d, want %d", got, numP*itemsPerProd)
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty after Drain: got false, want true")
	}
}

// TestRecycledReuseAcrossDrains cycles fill/drain rounds on a recycled
// queue so retired nodes flow back through the pool, then checks
// values still round-trip unchanged.
func TestRecycledReuseAcrossDrains(t *testing.T) {
	q := mpsc.Build[int](mpsc.New().Recycle())

	for round := range 50 {
		for i := range 32 {
			v := round*1000 + i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d: Enqueue: %v", round, err)
			}
		}
		if round%2 == 0 {
			if got := q.Drain(); got != 32 {
				t.Fatalf("round %d: Drain: got %d, want 32", round, got)
			}
			continue
		}
		for i := range 32 {
			got, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d: Dequeue(%d): %v", round, i, err)
			}
			if got != round*1000+i {
				t.Fatalf("round %d: Dequeue(%d): got %d, want %d",
					round, i, got, round*1000+i)
			}
		}
	}
}
