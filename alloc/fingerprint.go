package alloc

import "github.com/cespare/xxhash/v2"

// Region fingerprints. A fingerprint is an xxhash digest of an allocator's
// current contents, cheap enough to take before and after an operation that
// must not write to memory (Shrink, PopN, Swap) and compare.

// Fingerprint digests the used region, the bytes below the cursor.
func (s *Stack) Fingerprint() uint64 {
	return xxhash.Sum64(s.buf[:s.top])
}

// Fingerprint digests the used region, the bytes below the cursor. After
// Release it digests the empty region.
func (b *Bump) Fingerprint() uint64 {
	return xxhash.Sum64(b.buf[:b.top])
}

// Fingerprint digests the active arena's used region.
func (d *DoubleBump) Fingerprint() uint64 {
	return d.bufs[d.current].Fingerprint()
}

// Fingerprint digests the whole cell array, bookkeeping included. After
// Release it digests the empty region.
func (p *Pool[T]) Fingerprint() uint64 {
	return xxhash.Sum64(p.buf)
}
