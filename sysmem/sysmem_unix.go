//go:build unix

package sysmem

import (
	"errors"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/diag"
)

// Alloc maps whole pages of anonymous, private memory off the Go heap and
// returns the first l.Size bytes. Mappings are page-aligned, which covers
// every alignment the toolkit accepts.
func (p *Provider) Alloc(l alloc.Layout) ([]byte, error) {
	n, err := p.mapLen(l)
	if err != nil {
		return nil, err
	}

	data, err := unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, err
	}

	diag.L().Debug("sysmem map",
		zap.Int("bytes", n),
		zap.Uint64("requested", uint64(l.Size)))

	return data[:l.Size:l.Size], nil
}

// Free unmaps a region obtained from Alloc. The mapping length is
// reconstructed from the layout; double-unmap reports as a no-op.
func (p *Provider) Free(b []byte, l alloc.Layout) error {
	if len(b) == 0 {
		return nil
	}
	n, err := p.mapLen(l)
	if err != nil {
		return err
	}

	full := unsafe.Slice(unsafe.SliceData(b), n)
	if err := unix.Munmap(full); err != nil {
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}

	diag.L().Debug("sysmem unmap", zap.Int("bytes", n))
	return nil
}
