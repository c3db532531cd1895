// File: arena/arena_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package arena

import "testing"

func TestAllocAndReset(t *testing.T) {
	a := New(64)

	p1 := a.Alloc(16)
	if p1 == nil {
		t.Fatal("first alloc failed")
	}

	snap := a.Mark()

	p2 := a.Alloc(16)
	if p2 == nil {
		t.Fatal("second alloc failed")
	}

	a.Reset(snap)

	p3 := a.Alloc(16)
	if p3 == nil {
		t.Fatal("alloc after reset failed")
	}
	if &p3[0] != &p2[0] {
		t.Fatal("expected memory reuse after reset")
	}
}

func TestAllocExhaustion(t *testing.T) {
	a := New(32)
	if a.Alloc(32) == nil {
		t.Fatal("full-capacity alloc should succeed")
	}
	if a.Alloc(1) != nil {
		t.Fatal("alloc on exhausted arena should fail")
	}
	a.Reset(0)
	if a.Alloc(33) != nil {
		t.Fatal("over-capacity alloc should fail")
	}
}

func TestAllocAlignment(t *testing.T) {
	a := New(128)
	a.Alloc(3) // leaves the mark unaligned before rounding
	if a.Used()%wordAlign != 0 {
		t.Fatalf("used mark %d not aligned to %d", a.Used(), wordAlign)
	}
	p := a.Alloc(8)
	if p == nil {
		t.Fatal("aligned alloc failed")
	}
	if uintptr(a.Used())%uintptr(wordAlign) != 0 {
		t.Fatalf("used mark %d not aligned after second alloc", a.Used())
	}
}

func TestCallocZeroes(t *testing.T) {
	a := New(64)
	p := a.Alloc(16)
	for i := range p {
		p[i] = 0xAA
	}
	a.Reset(0)

	q := a.Calloc(4, 4)
	if q == nil {
		t.Fatal("calloc failed")
	}
	for i, b := range q {
		if b != 0 {
			t.Fatalf("calloc byte %d not zeroed: %#x", i, b)
		}
	}
}

func TestCallocOverflow(t *testing.T) {
	a := New(64)
	if a.Calloc(int(^uint(0)>>1), 2) != nil {
		t.Fatal("multiplicative overflow must be rejected")
	}
	if a.Calloc(0, 8) != nil {
		t.Fatal("zero-count calloc must return nil")
	}
}

func TestResetPastMarkPanics(t *testing.T) {
	a := New(64)
	a.Alloc(8)
	snap := a.Mark()
	a.Reset(0)

	defer func() {
		if recover() == nil {
			t.Fatal("reset past current mark must panic")
		}
	}()
	a.Reset(snap)
}

func TestZeroSizeAlloc(t *testing.T) {
	a := New(64)
	if a.Alloc(0) != nil {
		t.Fatal("zero-size alloc must return nil")
	}
	if a.Used() != 0 {
		t.Fatal("zero-size alloc must not move the mark")
	}
}
