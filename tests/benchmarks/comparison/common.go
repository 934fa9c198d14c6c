// Package comparison provides benchmarks comparing arena allocation
// strategies against each other and against the Go heap.
package comparison

import (
	"unsafe"
)

// BenchmarkPayloads defines the allocation sizes exercised across benchmarks
var BenchmarkPayloads = []struct {
	Name string // Short name for benchmark output
	Size uintptr
}{
	{Name: "16B", Size: 16},
	{Name: "64B", Size: 64},
	{Name: "256B", Size: 256},
	{Name: "1KB", Size: 1024},
}

// Arena capacity shared by the cursor allocators under test
const benchCapacity = 1 << 20

// record64 stands in for a typical fixed-size pooled object.
type record64 struct {
	ID     int64
	Flags  uint32
	Weight float32
	Tail   [44]byte
}

// Prevent compiler optimizations from eliminating benchmark code
// These variables are written to by benchmarks to ensure operations aren't optimized away.
var (
	benchPtr    unsafe.Pointer
	benchRecord *record64
	benchBytes  []byte
	benchUint64 uint64
	benchErr    error
)
