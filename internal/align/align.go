package align

// Alignment utilities shared by the allocators and memory providers.
// All helpers require the alignment to be a power of two; callers validate
// once at construction and the hot paths assume it.

// Max is the largest alignment the toolkit accepts, one 4KB page.
// Providers hand out regions aligned at most this strictly.
const Max = 4096

// Up returns n rounded up to the next multiple of a.
//
// Example:
//
//	Up(1, 8)  = 8
//	Up(8, 8)  = 8
//	Up(9, 8)  = 16
func Up(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

// Pad returns the number of padding bytes needed so that addr+Pad(addr, a)
// is a-aligned.
//
// Example:
//
//	Pad(16, 8) = 0
//	Pad(17, 8) = 7
func Pad(addr, a uintptr) uintptr {
	return Up(addr, a) - addr
}

// IsPow2 reports whether a is a non-zero power of two.
func IsPow2(a uintptr) bool {
	return a != 0 && a&(a-1) == 0
}
