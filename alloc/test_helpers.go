package alloc

import "errors"

// Fake providers shared by the package tests.

// errProviderDown is what the fakes return when told to fail.
var errProviderDown = errors.New("provider down")

// countingProvider wraps HeapProvider and counts Alloc/Free calls, for
// asserting release-once semantics.
type countingProvider struct {
	heap   HeapProvider
	allocs int
	frees  int
}

func (c *countingProvider) Alloc(l Layout) ([]byte, error) {
	c.allocs++
	return c.heap.Alloc(l)
}

func (c *countingProvider) Free(b []byte, l Layout) error {
	c.frees++
	return c.heap.Free(b, l)
}

// failAfter serves n Allocs from the heap, then fails every later one.
// Frees are counted so tests can assert partial-construction cleanup.
type failAfter struct {
	heap  HeapProvider
	n     int
	seen  int
	frees int
}

func (f *failAfter) Alloc(l Layout) ([]byte, error) {
	if f.seen >= f.n {
		return nil, errProviderDown
	}
	f.seen++
	return f.heap.Alloc(l)
}

func (f *failAfter) Free(b []byte, l Layout) error {
	f.frees++
	return f.heap.Free(b, l)
}

// Compile-time interface checks
var (
	_ Provider = (*countingProvider)(nil)
	_ Provider = (*failAfter)(nil)
)
