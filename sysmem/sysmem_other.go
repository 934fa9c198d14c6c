//go:build !unix

package sysmem

import "github.com/joshuapare/arenakit/alloc"

// Alloc falls back to the Go heap on platforms without anonymous mappings.
// The layout contract is unchanged; only the backing differs.
func (p *Provider) Alloc(l alloc.Layout) ([]byte, error) {
	if _, err := p.mapLen(l); err != nil {
		return nil, err
	}
	return alloc.HeapProvider{}.Alloc(l)
}

// Free releases a fallback region; the garbage collector reclaims it.
func (p *Provider) Free(b []byte, l alloc.Layout) error {
	return alloc.HeapProvider{}.Free(b, l)
}
