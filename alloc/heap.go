package alloc

import (
	"unsafe"

	"github.com/joshuapare/arenakit/internal/align"
)

// HeapProvider is the default Provider, backed by the Go heap. Layouts must
// come from NewLayout; Alloc does not re-validate them.
type HeapProvider struct{}

// Alloc over-allocates by Align-1 bytes and returns an aligned sub-slice.
// Interior pointers keep the whole backing array reachable, so the region
// stays alive as long as the owning allocator holds the slice.
func (HeapProvider) Alloc(l Layout) ([]byte, error) {
	raw := make([]byte, l.Size+l.Align-1)
	off := align.Pad(uintptr(unsafe.Pointer(&raw[0])), l.Align)
	return raw[off : off+l.Size : off+l.Size], nil
}

// Free is a no-op. The garbage collector reclaims the region once the
// owning allocator drops its slice.
func (HeapProvider) Free([]byte, Layout) error {
	return nil
}

// Compile-time interface check
var _ Provider = HeapProvider{}
