package alloc

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/arenakit/internal/diag"
)

// DoubleBump composes two bump allocators of identical capacity and
// alignment with a selector for the active one. Swap flips the selector
// without touching either arena, so one arena can be read while the other
// is written.
//
// The intended cycle: allocate into the active arena during frame N while
// consumers still read the inactive arena from frame N-1; Swap; Clear the
// new active arena once its readers finish, before writing frame N+1.
//
// Not safe for concurrent use.
type DoubleBump struct {
	bufs [2]*Bump

	// current selects the active arena, 0 or 1.
	current int
}

// NewDoubleBump returns a double-buffered bump allocator over two
// HeapProvider regions of the given capacity and alignment.
func NewDoubleBump(capacity, alignment uintptr) (*DoubleBump, error) {
	return NewDoubleBumpIn(HeapProvider{}, capacity, alignment)
}

// NewDoubleBumpIn returns a double-buffered bump allocator over two regions
// obtained from p. If the second arena cannot be constructed, the first is
// released before the error is returned.
func NewDoubleBumpIn(p Provider, capacity, alignment uintptr) (*DoubleBump, error) {
	first, err := NewBumpIn(p, capacity, alignment)
	if err != nil {
		return nil, err
	}
	second, err := NewBumpIn(p, capacity, alignment)
	if err != nil {
		_ = first.Release()
		return nil, err
	}
	return &DoubleBump{bufs: [2]*Bump{first, second}}, nil
}

// Swap flips which arena is active. Neither arena's contents nor cursor is
// touched; allocations made before the swap stay readable through their
// handles.
func (d *DoubleBump) Swap() {
	d.current ^= 1

	if logAlloc {
		diag.L().Debug("double swap", zap.Int("current", d.current))
	}
}

// Current returns the active arena.
func (d *DoubleBump) Current() *Bump {
	return d.bufs[d.current]
}

// ActiveIndex returns the selector position, 0 or 1.
func (d *DoubleBump) ActiveIndex() int {
	return d.current
}

// Alloc reserves size bytes in the active arena.
func (d *DoubleBump) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	return d.bufs[d.current].Alloc(size, alignment)
}

// Clear resets only the active arena. The inactive arena's contents and
// handles are left as they were.
func (d *DoubleBump) Clear() {
	d.bufs[d.current].Clear()
}

// Capacity returns the active arena's byte capacity.
func (d *DoubleBump) Capacity() uintptr {
	return d.bufs[d.current].Capacity()
}

// Used returns the active arena's cursor position.
func (d *DoubleBump) Used() uintptr {
	return d.bufs[d.current].Used()
}

// Stats returns a snapshot of the active arena's counters.
func (d *DoubleBump) Stats() Stats {
	return d.bufs[d.current].Stats()
}

// Release returns both regions to the provider. Idempotent; the first
// failure is reported.
func (d *DoubleBump) Release() error {
	err0 := d.bufs[0].Release()
	err1 := d.bufs[1].Release()
	if err0 != nil {
		return err0
	}
	return err1
}

// Compile-time interface check
var _ Arena = (*DoubleBump)(nil)
