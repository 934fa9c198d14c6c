// Package sysmem provides an alloc.Provider backed by anonymous memory
// mappings. Regions live outside the Go heap, so large arenas add nothing
// to the garbage collector's scan work. On platforms without mmap the
// provider falls back to the Go heap with identical semantics.
package sysmem

import (
	"fmt"
	"os"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/align"
)

// Provider allocates regions with anonymous, private mappings. The zero
// value is not ready; use New.
type Provider struct {
	pageSize uintptr
}

// New returns a Provider. The system page size is captured once.
func New() *Provider {
	return &Provider{pageSize: uintptr(os.Getpagesize())}
}

// PageSize returns the system page size regions are rounded to.
func (p *Provider) PageSize() uintptr {
	return p.pageSize
}

// mapLen returns the whole-page length backing a layout, or an error when
// the requested alignment cannot be satisfied by a page-aligned mapping.
func (p *Provider) mapLen(l alloc.Layout) (int, error) {
	if l.Align > p.pageSize {
		return 0, fmt.Errorf("%w: alignment %d exceeds page size %d",
			alloc.ErrBadLayout, l.Align, p.pageSize)
	}
	n := align.Up(l.Size, p.pageSize)
	if n > uintptr(^uint(0)>>1) {
		return 0, fmt.Errorf("%w: %d bytes too large to map", alloc.ErrBadLayout, l.Size)
	}
	return int(n), nil
}

// Compile-time interface check
var _ alloc.Provider = (*Provider)(nil)
