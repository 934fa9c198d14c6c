package alloc

import (
	"fmt"
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/arenakit/internal/diag"
)

// poolEnd terminates the free list.
const poolEnd = int32(-1)

// poolCell is one slot: object storage plus free-list bookkeeping. value
// must stay the first field so a slot's storage address and its cell
// address coincide; Free and IsLive recover the cell from a Ref that way.
type poolCell[T any] struct {
	value T

	// slot is the cell's own index, fixed at construction.
	slot int32

	// next links the free list; meaningful only while the slot is free.
	next int32

	// live marks an occupied slot. Maintained by Alloc and Free, consulted
	// by IsLive and Validate.
	live bool
}

// Pool is a fixed-count allocator of uniform slots threaded into an
// intrusive free list.
//
// Key characteristics:
//   - O(1) allocation: pop the free-list head, assign the value in place
//   - O(1) deallocation: push the slot back onto the head
//   - Most-recently-freed slot is reused first
//   - Free never runs finalizers; slot contents go stale, not cleaned
//
// Double-freeing a slot is not checked and corrupts the free list; that is
// caller discipline, and Validate exists to detect it after the fact.
// Not safe for concurrent use.
type Pool[T any] struct {
	cells  []poolCell[T]
	buf    []byte
	layout Layout
	prov   Provider

	// next is the free-list head, poolEnd when every slot is live.
	next int32

	// live counts occupied slots.
	live int32

	released bool

	allocs uint64
	frees  uint64
	fails  uint64
}

// NewPool returns a pool of n slots of T over a HeapProvider region.
func NewPool[T any](n int) (*Pool[T], error) {
	return NewPoolIn[T](HeapProvider{}, n)
}

// NewPoolIn returns a pool of n slots of T over a region obtained from p.
// Every slot starts free, linked in index order with slot 0 at the head.
func NewPoolIn[T any](p Provider, n int) (*Pool[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: pool needs at least one slot, got %d", ErrBadLayout, n)
	}
	if n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d slots exceed pool limit", ErrBadLayout, n)
	}

	var cell poolCell[T]
	cellSize := unsafe.Sizeof(cell)
	if uintptr(n) > ^uintptr(0)/cellSize {
		return nil, fmt.Errorf("%w: %d slots of %d bytes overflow", ErrBadLayout, n, cellSize)
	}

	l, err := NewLayout(uintptr(n)*cellSize, unsafe.Alignof(cell))
	if err != nil {
		return nil, err
	}
	buf, err := p.Alloc(l)
	if err != nil {
		return nil, err
	}

	cells := unsafe.Slice((*poolCell[T])(unsafe.Pointer(unsafe.SliceData(buf))), n)
	for i := range cells {
		cells[i].slot = int32(i)
		cells[i].next = int32(i) + 1
		cells[i].live = false
	}
	cells[n-1].next = poolEnd

	if logAlloc {
		diag.L().Debug("pool construct",
			zap.Int("slots", n),
			zap.Uint64("slot_size", uint64(cellSize)))
	}

	return &Pool[T]{cells: cells, buf: buf, layout: l, prov: p, next: 0}, nil
}

// Alloc takes the free-list head, assigns v onto its possibly stale
// storage, and returns a Ref addressing the slot. Fails with ErrPoolFull
// when the free list is empty; the caller may Free a slot and retry.
func (p *Pool[T]) Alloc(v T) (Ref[T], error) {
	if p.released {
		return Ref[T]{}, ErrReleased
	}
	if p.next == poolEnd {
		p.fails++
		return Ref[T]{}, ErrPoolFull
	}

	c := &p.cells[p.next]
	c.value = v
	c.live = true
	p.next = c.next
	p.live++
	p.allocs++

	if logAlloc {
		diag.L().Debug("pool alloc", zap.Int32("slot", c.slot))
	}

	return Ref[T]{p: &c.value}, nil
}

// Free pushes the Ref's slot onto the free-list head, making it the next
// slot handed out. Slot contents go stale in place; no finalizer runs.
// Freeing a slot twice is not rejected and corrupts the list.
func (p *Pool[T]) Free(r Ref[T]) error {
	if p.released {
		return ErrReleased
	}
	c, err := p.cellOf(r)
	if err != nil {
		return err
	}

	c.next = p.next
	if c.live {
		p.live--
	}
	c.live = false
	p.next = c.slot
	p.frees++

	if logAlloc {
		diag.L().Debug("pool free", zap.Int32("slot", c.slot))
	}

	return nil
}

// IsLive reports whether the Ref's slot currently holds a live object.
func (p *Pool[T]) IsLive(r Ref[T]) (bool, error) {
	if p.released {
		return false, ErrReleased
	}
	c, err := p.cellOf(r)
	if err != nil {
		return false, err
	}
	return c.live, nil
}

// SlotOf returns the index of the slot backing r. Foreign Refs fail with
// ErrBadRef.
func (p *Pool[T]) SlotOf(r Ref[T]) (int, error) {
	if p.released {
		return 0, ErrReleased
	}
	c, err := p.cellOf(r)
	if err != nil {
		return 0, err
	}
	return int(c.slot), nil
}

// LiveAt reports whether slot i currently holds a live object. Out-of-range
// indexes read as false.
func (p *Pool[T]) LiveAt(i int) bool {
	if p.released || i < 0 || i >= len(p.cells) {
		return false
	}
	return p.cells[i].live
}

// cellOf translates a Ref back to its cell. The Ref must address the value
// field of one of this pool's cells.
func (p *Pool[T]) cellOf(r Ref[T]) (*poolCell[T], error) {
	if r.p == nil {
		return nil, ErrBadRef
	}

	var cell poolCell[T]
	size := unsafe.Sizeof(cell)

	addr := uintptr(unsafe.Pointer(r.p))
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.cells)))
	if addr < base {
		return nil, ErrBadRef
	}
	off := addr - base
	idx := off / size
	if idx >= uintptr(len(p.cells)) || off%size != 0 {
		return nil, ErrBadRef
	}
	return &p.cells[idx], nil
}

// Validate walks the free list and reports the first integrity violation:
// an out-of-range link, a slot linked twice (the double-free signature), a
// live slot on the list, or a list length that disagrees with the live
// count.
func (p *Pool[T]) Validate() error {
	if p.released {
		return ErrReleased
	}

	seen := make([]bool, len(p.cells))
	count := 0
	for i := p.next; i != poolEnd; {
		if i < 0 || int(i) >= len(p.cells) {
			return fmt.Errorf("%w: link %d out of range", ErrCorrupt, i)
		}
		if seen[i] {
			return fmt.Errorf("%w: slot %d linked twice", ErrCorrupt, i)
		}
		seen[i] = true

		c := &p.cells[i]
		if c.live {
			return fmt.Errorf("%w: live slot %d on free list", ErrCorrupt, i)
		}
		if c.slot != i {
			return fmt.Errorf("%w: slot %d self-index reads %d", ErrCorrupt, i, c.slot)
		}
		count++
		i = c.next
	}

	if free := len(p.cells) - int(p.live); count != free {
		return fmt.Errorf("%w: free list holds %d slots, expected %d", ErrCorrupt, count, free)
	}
	return nil
}

// Release returns the backing region to the provider. Idempotent; later
// calls return nil. Subsequent operations fail with ErrReleased.
func (p *Pool[T]) Release() error {
	if p.released {
		return nil
	}
	p.released = true

	buf := p.buf
	p.buf = nil
	p.cells = nil
	p.next = poolEnd
	p.live = 0

	if logAlloc {
		diag.L().Debug("pool release")
	}

	return p.prov.Free(buf, p.layout)
}

// Slots returns the pool's fixed slot count.
func (p *Pool[T]) Slots() int {
	return len(p.cells)
}

// Live returns the number of occupied slots.
func (p *Pool[T]) Live() int {
	return int(p.live)
}

// SlotSize returns the byte size of one cell, bookkeeping included.
func (p *Pool[T]) SlotSize() uintptr {
	var cell poolCell[T]
	return unsafe.Sizeof(cell)
}

// Capacity returns the backing region's byte capacity, zero after Release.
func (p *Pool[T]) Capacity() uintptr {
	return uintptr(len(p.buf))
}

// Used returns the bytes held by live slots.
func (p *Pool[T]) Used() uintptr {
	return uintptr(p.live) * p.SlotSize()
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Capacity: uintptr(len(p.buf)),
		Used:     p.Used(),
		Allocs:   p.allocs,
		Frees:    p.frees,
		Fails:    p.fails,
	}
}
