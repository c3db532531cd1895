// File: api/ring.go
// Author: momentics@gmail.com
//
// Bounded FIFO ring contract. The link's event queue implements it.

package api

// Ring is a fixed-capacity FIFO contract.
type Ring[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}
