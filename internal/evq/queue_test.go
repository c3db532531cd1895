// File: internal/evq/queue_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package evq

import (
	"testing"

	"github.com/momentics/wen/api"
)

func TestFIFO(t *testing.T) {
	const capacity = 16
	q := New(capacity)

	for i := 0; i < capacity-1; i++ {
		if !q.Enqueue(api.Event{Type: api.EventOpen, CloseCode: uint16(i)}) {
			t.Fatalf("enqueue %d failed", i)
		}
	}

	// Queue should now be full.
	if q.Enqueue(api.Event{Type: api.EventClose}) {
		t.Fatal("enqueue on full queue must fail")
	}
	if q.Len() != capacity-1 {
		t.Fatalf("failed push changed queue length: %d", q.Len())
	}

	for i := 0; i < capacity-1; i++ {
		ev, ok := q.Dequeue()
		if !ok {
			t.Fatalf("dequeue %d failed", i)
		}
		if ev.Type != api.EventOpen || ev.CloseCode != uint16(i) {
			t.Fatalf("order violated at %d: got %v/%d", i, ev.Type, ev.CloseCode)
		}
	}

	if _, ok := q.Dequeue(); ok {
		t.Fatal("dequeue on empty queue must fail")
	}
}

func TestWrapAround(t *testing.T) {
	q := New(4)
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			if !q.Enqueue(api.Event{Type: api.EventPing}) {
				t.Fatalf("round %d enqueue %d failed", round, i)
			}
		}
		for i := 0; i < 3; i++ {
			if _, ok := q.Dequeue(); !ok {
				t.Fatalf("round %d dequeue %d failed", round, i)
			}
		}
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty after balanced rounds: %d", q.Len())
	}
}
