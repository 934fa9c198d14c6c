package alloc

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/arenakit/internal/align"
	"github.com/joshuapare/arenakit/internal/diag"
)

// Stack is a fixed-capacity LIFO allocator. Its storage is embedded at
// construction and never obtained from a Provider. Allocation advances a
// cursor; deallocation is a watermark rewind (Shrink, PopN) or a full
// Clear, each a single cursor assignment that never touches memory.
//
// Key characteristics:
//   - O(1) allocation: alignment padding plus one cursor bump
//   - O(1) deallocation: rewind is an integer assignment
//   - Zero per-object overhead: no headers, no free lists
//   - Clear and rewind never run finalizers; contents stay in place
//
// Not safe for concurrent use.
type Stack struct {
	buf []byte

	// top is the cursor: the offset of the next free byte.
	// Holds 0 <= top <= len(buf) at all times.
	top uintptr

	allocs uint64
	clears uint64
	fails  uint64
}

// NewStack returns a stack allocator with an embedded buffer of the given
// byte capacity. A zero capacity is permitted; every sized Alloc then fails.
func NewStack(capacity uintptr) *Stack {
	return &Stack{buf: make([]byte, capacity)}
}

// Alloc reserves size bytes at an alignment-aligned address. The request is
// rejected with ErrNoSpace, cursor untouched, if the padded allocation
// would pass capacity.
func (s *Stack) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if !align.IsPow2(alignment) {
		return nil, fmt.Errorf("%w: alignment %d is not a power of two", ErrBadLayout, alignment)
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(s.buf)))
	pad := align.Pad(base+s.top, alignment)

	rem := uintptr(len(s.buf)) - s.top
	if pad > rem || size > rem-pad {
		s.fails++
		return nil, ErrNoSpace
	}

	off := s.top + pad
	s.top = off + size
	s.allocs++

	if logAlloc {
		diag.L().Debug("stack alloc",
			zap.Uint64("size", uint64(size)),
			zap.Uint64("align", uint64(alignment)),
			zap.Uint64("top", uint64(s.top)))
	}

	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(s.buf)), int(off)), nil
}

// Clear resets the cursor to zero, restoring full capacity. Contents are
// untouched and no finalizers run; handles into the buffer dangle.
func (s *Stack) Clear() {
	s.top = 0
	s.clears++

	if logAlloc {
		diag.L().Debug("stack clear")
	}
}

// Mark returns the current cursor for a later Shrink.
func (s *Stack) Mark() uintptr {
	return s.top
}

// Shrink sets the cursor to an earlier watermark obtained from Mark,
// rewinding every allocation made since. Rewinding does not write to
// memory; bytes above the watermark are overwritten only by later
// allocations.
func (s *Stack) Shrink(to uintptr) error {
	if to > uintptr(len(s.buf)) {
		return fmt.Errorf("%w: %d past capacity %d", ErrBadMark, to, len(s.buf))
	}
	s.top = to
	return nil
}

// PopN rewinds the cursor by n bytes.
func (s *Stack) PopN(n uintptr) error {
	if n > s.top {
		return fmt.Errorf("%w: pop %d past cursor %d", ErrBadMark, n, s.top)
	}
	s.top -= n
	return nil
}

// Capacity returns the embedded buffer's byte capacity.
func (s *Stack) Capacity() uintptr {
	return uintptr(len(s.buf))
}

// Used returns the current cursor position.
func (s *Stack) Used() uintptr {
	return s.top
}

// Stats returns a snapshot of the allocator's counters.
func (s *Stack) Stats() Stats {
	return Stats{
		Capacity: uintptr(len(s.buf)),
		Used:     s.top,
		Allocs:   s.allocs,
		Clears:   s.clears,
		Fails:    s.fails,
	}
}

// Compile-time interface check
var _ Arena = (*Stack)(nil)
