package alloc

import "errors"

var (
	// ErrNoSpace indicates the request plus alignment padding would overflow
	// the allocator's remaining capacity. The cursor is left unchanged.
	ErrNoSpace = errors.New("alloc: not enough space")

	// ErrBadLayout indicates an invalid size/alignment pair at construction.
	ErrBadLayout = errors.New("alloc: bad layout")

	// ErrPoolFull indicates the pool's free list is empty.
	ErrPoolFull = errors.New("alloc: pool full")

	// ErrBadRef indicates a reference that does not address a slot of this
	// allocator.
	ErrBadRef = errors.New("alloc: bad reference")

	// ErrBadMark indicates a rewind watermark beyond capacity, or a pop past
	// the current cursor.
	ErrBadMark = errors.New("alloc: bad watermark")

	// ErrReleased indicates use of an allocator whose backing region has been
	// returned to its provider.
	ErrReleased = errors.New("alloc: allocator released")

	// ErrCorrupt indicates a free-list integrity violation, usually caused by
	// a double free.
	ErrCorrupt = errors.New("alloc: free list corrupt")
)
