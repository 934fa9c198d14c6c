// Package alloc provides allocation strategies over raw, contiguous memory
// regions: a stack allocator with LIFO rewind, a bump arena with bulk
// reset, a double-buffered bump pair for frame-style swapping, and a
// fixed-count pool with an intrusive free list.
//
// # Overview
//
// Every allocator owns one fixed-capacity region chosen at construction
// and fails with a recoverable error on exhaustion; nothing grows. The
// cursor allocators hand out addresses by advancing an offset through the
// region, so deallocation is bulk (Clear) or scoped (the Stack's rewind),
// never per object. The pool hands out uniform slots from a free list with
// O(1) allocate and deallocate.
//
// # Arena Interface
//
// Stack, Bump and DoubleBump share the Arena interface:
//
//   - Alloc(size, alignment): reserve bytes at an aligned address
//   - Clear(): reset the cursor, restoring full capacity
//   - Capacity(), Used(): region size and cursor position
//
// The generic placement helper writes a typed value and returns a handle:
//
//	r, err := alloc.New(a, int64(42))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(r.Get()) // 42
//
// # Allocators
//
// Stack: embedded buffer, LIFO discipline
//
//   - Mark() records a watermark, Shrink(to) rewinds to it
//   - PopN(n) rewinds n bytes
//   - Rewind is one integer assignment and never writes to memory
//
// Bump: provider-obtained region, bulk reset only
//
//   - Construction takes an explicit capacity and base alignment
//   - Release() returns the region to its provider exactly once
//
// DoubleBump: two equal Bumps plus a selector
//
//   - Swap() flips the active arena without touching contents
//   - Clear() resets only the active arena
//   - One arena is written while the other's handles stay readable
//
// Pool[T]: fixed slot count, uniform type
//
//   - Alloc(v) pops the free-list head, Free(r) pushes it back
//   - The most recently freed slot is reused first
//   - IsLive(r) reports slot occupancy, Validate() checks list integrity
//
// # Memory Providers
//
// Allocators that do not embed storage obtain it from a Provider:
//
//	type Provider interface {
//	    Alloc(l Layout) ([]byte, error)
//	    Free(b []byte, l Layout) error
//	}
//
// HeapProvider (the default) allocates on the Go heap and lets the garbage
// collector reclaim released regions. The sysmem package provides an
// anonymous-mmap implementation off the Go heap. The ...In constructors
// take an explicit provider:
//
//	b, err := alloc.NewBumpIn(sysmem.New(), 1<<20, 64)
//
// # Handles
//
// Ref[T] is a typed, non-owning reference into allocator-owned storage.
// Copying a Ref copies the address; any number of Refs may alias one slot.
// The only runtime check is on nil: dereferencing the zero Ref panics.
// No liveness or staleness tracking exists. A Ref dangles once its
// allocator clears, rewinds past it, frees its slot, or releases its
// region; dereferencing it then is outside the contract. The allocator
// must outlive every Ref derived from it.
//
// # Pointer Values
//
// Arena regions are untyped bytes the garbage collector does not scan.
// Storing a value whose type contains Go pointers (strings, slices, maps,
// pointers) is permitted, but the referents must stay reachable elsewhere
// for as long as the arena copy is read.
//
// # No Finalization
//
// Clear, Shrink, PopN, Free and Release reclaim storage only. They never
// run finalizers or touch slot contents; callers needing teardown must
// track and invoke it themselves before invalidating handles.
//
// # Diagnostics
//
// Every allocator exposes Stats() counters and a Fingerprint() content
// digest; the pool adds IsLive and Validate. Setting ARENA_LOG_ALLOC
// enables per-operation debug logging, and ARENA_DEBUG switches the
// toolkit logger from no-op to a development logger on stderr.
//
// # Concurrency
//
// Nothing here synchronizes. One goroutine per allocator, or external
// locking, is the caller's responsibility.
package alloc
