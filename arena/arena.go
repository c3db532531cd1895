// File: arena/arena.go
// Package arena implements the bump allocator backing slice lifetimes.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Allocation is linear; individual allocations cannot be freed. The only
// reclamation is Reset to a previously taken Snapshot, which is what makes
// the one-outstanding-slice rule of the link observable: rolling back to
// the snapshot taken right before a slice allocation truly frees it.

package arena

import "unsafe"

// wordAlign is the platform pointer alignment. Both the running offset and
// every requested size are rounded up to it.
const wordAlign = int(unsafe.Sizeof(uintptr(0)))

// Snapshot is the value of the arena's used-mark at a point in time. It is
// the sole handle for reclamation.
type Snapshot int

// Arena is a linear region of fixed capacity with a used high-water mark.
type Arena struct {
	buf  []byte
	used int
}

// New allocates an arena of the given capacity. The backing memory is
// obtained once, here; the arena never grows.
func New(capacity int) *Arena {
	if capacity <= 0 {
		panic("wen: arena capacity must be positive")
	}
	return &Arena{buf: make([]byte, capacity)}
}

// Alloc returns size bytes of uninitialised arena memory, or nil when the
// remaining room is insufficient. A zero or negative size yields nil.
func (a *Arena) Alloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	off := alignUp(a.used)
	need := alignUp(size)
	if off > len(a.buf) || need > len(a.buf)-off {
		return nil
	}
	a.used = off + need
	return a.buf[off : off+size : off+need]
}

// Calloc returns count*size zeroed bytes, rejecting multiplicative
// overflow. Returns nil on failure like Alloc.
func (a *Arena) Calloc(count, size int) []byte {
	if count <= 0 || size <= 0 {
		return nil
	}
	if count > int(^uint(0)>>1)/size {
		return nil
	}
	p := a.Alloc(count * size)
	if p == nil {
		return nil
	}
	// The region may have held earlier allocations rolled back by Reset.
	for i := range p {
		p[i] = 0
	}
	return p
}

// Mark snapshots the current used-mark.
func (a *Arena) Mark() Snapshot {
	return Snapshot(a.used)
}

// Reset lowers the used-mark to snap, invalidating every allocation made
// after the snapshot was taken. Resetting past the current mark is a
// caller bug and panics.
func (a *Arena) Reset(snap Snapshot) {
	if int(snap) > a.used || snap < 0 {
		panic("wen: arena reset past current mark")
	}
	a.used = int(snap)
}

// Used returns the current high-water mark.
func (a *Arena) Used() int { return a.used }

// Cap returns the fixed capacity.
func (a *Arena) Cap() int { return len(a.buf) }

// Remaining returns the bytes left before the capacity is hit.
func (a *Arena) Remaining() int { return len(a.buf) - a.used }

// Release drops the backing memory. Called by the link when the CLOSED
// state is reached; the arena is unusable afterwards.
func (a *Arena) Release() {
	a.buf = nil
	a.used = 0
}

func alignUp(n int) int {
	return (n + wordAlign - 1) &^ (wordAlign - 1)
}
