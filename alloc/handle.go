package alloc

import "unsafe"

// Ref is a typed, non-owning reference into allocator-owned storage.
// Copying a Ref copies the address only; any number of Refs may alias one
// slot. A Ref carries no liveness information: it becomes dangling when its
// allocator clears, rewinds past it, frees its slot, or releases its
// backing region, and dereferencing it then is outside the contract.
type Ref[T any] struct {
	p *T
}

// MakeRef wraps an existing address. A nil p yields the zero Ref.
func MakeRef[T any](p *T) Ref[T] {
	return Ref[T]{p: p}
}

// IsNil reports whether the Ref addresses nothing. This is the only
// inspection that does not panic on the zero Ref.
func (r Ref[T]) IsNil() bool {
	return r.p == nil
}

// Ptr returns the pointee address. A nil dereference is a programming
// defect and panics rather than yielding a value; no other runtime check
// exists.
func (r Ref[T]) Ptr() *T {
	if r.p == nil {
		panic("alloc: nil Ref dereference")
	}
	return r.p
}

// Get reads the pointee.
func (r Ref[T]) Get() T {
	return *r.Ptr()
}

// Set writes the pointee.
func (r Ref[T]) Set(v T) {
	*r.Ptr() = v
}

// New places v into a and returns a Ref addressing the stored copy. The
// value is assigned onto possibly stale bytes, not zero-initialized first.
// On allocator failure the zero Ref and the error are returned.
//
// Arena regions are untyped bytes the garbage collector does not scan.
// Values whose type contains Go pointers (strings, slices, maps, pointers)
// must have their referents kept reachable elsewhere for as long as the
// arena copy is read.
func New[T any](a Arena, v T) (Ref[T], error) {
	var zero T
	p, err := a.Alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero))
	if err != nil {
		return Ref[T]{}, err
	}
	t := (*T)(p)
	*t = v
	return Ref[T]{p: t}, nil
}
