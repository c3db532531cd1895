// File: internal/evq/queue.go
// Package evq implements the link's bounded event FIFO.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer, single-consumer ring with head/tail cursors modulo the
// capacity. One cell is always left unused so full and empty are
// distinguishable without a separate counter: push succeeds iff
// (tail+1) mod cap != head, empty iff head == tail. Events are stored by
// value. The link is single-threaded by contract, so no atomics.

package evq

import "github.com/momentics/wen/api"

// Ensure compile-time interface compliance.
var _ api.Ring[api.Event] = (*Queue)(nil)

// Queue is a fixed-capacity FIFO of event records.
type Queue struct {
	cells []api.Event
	head  int
	tail  int
}

// New allocates a queue with the given cell count. Because one cell stays
// unused, a queue of capacity q holds at most q-1 events.
func New(capacity int) *Queue {
	if capacity < 2 {
		panic("wen: event queue capacity must be at least 2")
	}
	return &Queue{cells: make([]api.Event, capacity)}
}

// Enqueue appends ev; returns false and leaves the queue unchanged when
// full.
func (q *Queue) Enqueue(ev api.Event) bool {
	next := (q.tail + 1) % len(q.cells)
	if next == q.head {
		return false
	}
	q.cells[q.tail] = ev
	q.tail = next
	return true
}

// Dequeue removes and returns the oldest event; ok is false when empty.
func (q *Queue) Dequeue() (api.Event, bool) {
	if q.head == q.tail {
		return api.Event{}, false
	}
	ev := q.cells[q.head]
	q.cells[q.head] = api.Event{}
	q.head = (q.head + 1) % len(q.cells)
	return ev, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return (q.tail - q.head + len(q.cells)) % len(q.cells)
}

// Cap returns the cell count, one of which is always unused.
func (q *Queue) Cap() int {
	return len(q.cells)
}
