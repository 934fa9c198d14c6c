package alloc

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/align"
)

// Runtime debug flag for allocation tracing - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// Layout describes a memory request: a byte size plus a power-of-two
// alignment the region's base address must satisfy.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates a size/alignment pair. It rejects a zero size, an
// alignment that is zero, not a power of two, or larger than align.Max, and
// a size that overflows when rounded up to the alignment.
func NewLayout(size, alignment uintptr) (Layout, error) {
	if size == 0 {
		return Layout{}, fmt.Errorf("%w: zero size", ErrBadLayout)
	}
	if !align.IsPow2(alignment) {
		return Layout{}, fmt.Errorf("%w: alignment %d is not a power of two", ErrBadLayout, alignment)
	}
	if alignment > align.Max {
		return Layout{}, fmt.Errorf("%w: alignment %d exceeds max %d", ErrBadLayout, alignment, align.Max)
	}
	if size > ^uintptr(0)-(alignment-1) {
		return Layout{}, fmt.Errorf("%w: size %d overflows when aligned", ErrBadLayout, size)
	}
	return Layout{Size: size, Align: alignment}, nil
}

// Padded returns Size rounded up to Align.
func (l Layout) Padded() uintptr {
	return align.Up(l.Size, l.Align)
}

// Provider supplies raw memory regions for allocators that do not embed
// their own storage. The bump and pool allocators consume one; the stack
// allocator never does.
//
// Implementations:
//   - HeapProvider: Go-heap backed, the default
//   - sysmem.Provider: anonymous mmap, off the Go heap
type Provider interface {
	// Alloc returns a region of exactly l.Size bytes whose base address
	// satisfies l.Align. Contents are unspecified.
	Alloc(l Layout) ([]byte, error)

	// Free releases a region previously returned by Alloc with the same
	// layout. Each region is freed at most once.
	Free(b []byte, l Layout) error
}

// Arena is the contract shared by the cursor allocators (Stack, Bump,
// DoubleBump). Allocation advances a cursor through a fixed-capacity region;
// deallocation is bulk (Clear) or scoped (the Stack's rewind), never per
// object.
type Arena interface {
	// Alloc reserves size bytes at an alignment-aligned address and returns
	// the address. Fails with ErrNoSpace when the request plus padding
	// exceeds remaining capacity, leaving the cursor unchanged.
	Alloc(size, alignment uintptr) (unsafe.Pointer, error)

	// Clear resets the cursor to zero, making full capacity reusable.
	// Contents are untouched and no finalizers run.
	Clear()

	// Capacity returns the region's total byte capacity.
	Capacity() uintptr

	// Used returns the current cursor position.
	Used() uintptr
}

// Stats is a point-in-time snapshot of an allocator's counters. Frees stays
// zero for the cursor allocators; only the pool frees per object.
type Stats struct {
	Capacity uintptr
	Used     uintptr
	Allocs   uint64
	Frees    uint64
	Clears   uint64
	Fails    uint64
}
