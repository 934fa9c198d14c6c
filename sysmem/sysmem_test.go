package sysmem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/alloc"
)

// TestProvider_RoundTrip maps a region, writes every byte, and unmaps.
func TestProvider_RoundTrip(t *testing.T) {
	prov := New()

	l, err := alloc.NewLayout(100, 8)
	require.NoError(t, err)

	b, err := prov.Alloc(l)
	require.NoError(t, err)
	require.Len(t, b, 100, "region should expose exactly the requested size")

	base := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	assert.Zero(t, base%8, "base should satisfy the layout alignment")

	for i := range b {
		b[i] = byte(i)
	}
	assert.Equal(t, byte(99), b[99])

	require.NoError(t, prov.Free(b, l))
}

// TestProvider_AlignmentWithinPage: any alignment the toolkit accepts is
// satisfied.
func TestProvider_AlignmentWithinPage(t *testing.T) {
	prov := New()

	for _, alignment := range []uintptr{1, 64, 4096} {
		l, err := alloc.NewLayout(64, alignment)
		require.NoError(t, err)

		b, err := prov.Alloc(l)
		require.NoError(t, err, "alloc with alignment %d should succeed", alignment)

		base := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
		assert.Zero(t, base%alignment, "base should satisfy alignment %d", alignment)

		require.NoError(t, prov.Free(b, l))
	}
}

// TestProvider_RejectsAlignmentPastPage: a layout built by hand with an
// alignment no page-aligned mapping can satisfy is refused.
func TestProvider_RejectsAlignmentPastPage(t *testing.T) {
	prov := New()

	l := alloc.Layout{Size: 8, Align: prov.PageSize() * 2}
	_, err := prov.Alloc(l)
	require.ErrorIs(t, err, alloc.ErrBadLayout)
}

// TestProvider_BacksBumpArena: a bump arena over mapped memory behaves
// like one over the heap.
func TestProvider_BacksBumpArena(t *testing.T) {
	b, err := alloc.NewBumpIn(New(), 1<<20, 64)
	require.NoError(t, err)

	r, err := alloc.New(b, int64(1234))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), r.Get())

	b.Clear()
	require.Zero(t, b.Used())

	require.NoError(t, b.Release())
	require.NoError(t, b.Release(), "release should stay idempotent over mapped memory")
}

// TestProvider_BacksPool: pool cells live happily in mapped memory.
func TestProvider_BacksPool(t *testing.T) {
	p, err := alloc.NewPoolIn[int64](New(), 64)
	require.NoError(t, err)

	refs := make([]alloc.Ref[int64], 0, 64)
	for i := range 64 {
		r, err := p.Alloc(int64(i))
		require.NoError(t, err)
		refs = append(refs, r)
	}
	require.NoError(t, p.Validate())

	for i, r := range refs {
		require.Equal(t, int64(i), r.Get(), "slot %d should hold its value", i)
		require.NoError(t, p.Free(r))
	}
	require.Zero(t, p.Live())

	require.NoError(t, p.Release())
}
