package alloc

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/arenakit/internal/align"
	"github.com/joshuapare/arenakit/internal/diag"
)

// Bump is a monotonic arena allocator. The backing region is obtained from
// a Provider with an explicit capacity and alignment chosen at
// construction; the allocation algorithm is the Stack's cursor bump, but
// only full Clear is exposed, no partial rewind.
//
// A Bump owns its region: Release returns it to the provider exactly once.
// Handles into a released region are dangling.
//
// Not safe for concurrent use.
type Bump struct {
	buf    []byte
	layout Layout
	prov   Provider

	// top is the cursor: the offset of the next free byte.
	top uintptr

	released bool

	allocs uint64
	clears uint64
	fails  uint64
}

// NewBump returns a bump allocator over a HeapProvider region of the given
// capacity and base alignment.
func NewBump(capacity, alignment uintptr) (*Bump, error) {
	return NewBumpIn(HeapProvider{}, capacity, alignment)
}

// NewBumpIn returns a bump allocator over a region obtained from p.
// Construction fails with ErrBadLayout for an invalid capacity/alignment
// pair, or with the provider's error; neither is raised mid-use.
func NewBumpIn(p Provider, capacity, alignment uintptr) (*Bump, error) {
	l, err := NewLayout(capacity, alignment)
	if err != nil {
		return nil, err
	}
	buf, err := p.Alloc(l)
	if err != nil {
		return nil, err
	}

	if logAlloc {
		diag.L().Debug("bump construct",
			zap.Uint64("capacity", uint64(l.Size)),
			zap.Uint64("align", uint64(l.Align)))
	}

	return &Bump{buf: buf, layout: l, prov: p}, nil
}

// Alloc reserves size bytes at an alignment-aligned address. The request is
// rejected with ErrNoSpace, cursor untouched, if the padded allocation
// would pass capacity, and with ErrReleased after Release.
func (b *Bump) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if b.released {
		return nil, ErrReleased
	}
	if !align.IsPow2(alignment) {
		return nil, fmt.Errorf("%w: alignment %d is not a power of two", ErrBadLayout, alignment)
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
	pad := align.Pad(base+b.top, alignment)

	rem := uintptr(len(b.buf)) - b.top
	if pad > rem || size > rem-pad {
		b.fails++
		return nil, ErrNoSpace
	}

	off := b.top + pad
	b.top = off + size
	b.allocs++

	if logAlloc {
		diag.L().Debug("bump alloc",
			zap.Uint64("size", uint64(size)),
			zap.Uint64("align", uint64(alignment)),
			zap.Uint64("top", uint64(b.top)))
	}

	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(b.buf)), int(off)), nil
}

// Clear resets the cursor to zero, restoring full capacity. Contents are
// untouched and no finalizers run. No-op after Release.
func (b *Bump) Clear() {
	if b.released {
		return
	}
	b.top = 0
	b.clears++

	if logAlloc {
		diag.L().Debug("bump clear")
	}
}

// Release returns the backing region to the provider. Idempotent: the
// region is freed exactly once and later calls return nil. Subsequent
// Allocs fail with ErrReleased.
func (b *Bump) Release() error {
	if b.released {
		return nil
	}
	b.released = true

	buf := b.buf
	b.buf = nil
	b.top = 0

	if logAlloc {
		diag.L().Debug("bump release",
			zap.Uint64("capacity", uint64(b.layout.Size)))
	}

	return b.prov.Free(buf, b.layout)
}

// Capacity returns the region's byte capacity, zero after Release.
func (b *Bump) Capacity() uintptr {
	return uintptr(len(b.buf))
}

// Used returns the current cursor position.
func (b *Bump) Used() uintptr {
	return b.top
}

// Stats returns a snapshot of the allocator's counters.
func (b *Bump) Stats() Stats {
	return Stats{
		Capacity: uintptr(len(b.buf)),
		Used:     b.top,
		Allocs:   b.allocs,
		Clears:   b.clears,
		Fails:    b.fails,
	}
}

// Compile-time interface check
var _ Arena = (*Bump)(nil)
