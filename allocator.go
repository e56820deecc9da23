package alloc

import "unsafe"

// DefaultAlign is the alignment used by Alloc when no alignment is given.
const DefaultAlign = unsafe.Sizeof(uintptr(0))

// Allocator is the contract shared by every backend and decorator.
//
// Implementations are single-owner: none of them is safe for concurrent
// use without external synchronization.
type Allocator interface {
	// Alloc returns n bytes aligned to DefaultAlign.
	Alloc(n uintptr) (unsafe.Pointer, error)
	// AllocAlign returns n bytes aligned to align, which must be a power of two.
	AllocAlign(n, align uintptr) (unsafe.Pointer, error)
	// Free returns a block obtained from Alloc.
	Free(p unsafe.Pointer, n uintptr)
	// FreeAlign returns a block obtained from AllocAlign.
	FreeAlign(p unsafe.Pointer, n, align uintptr)

	Base() unsafe.Pointer
	Offset(p unsafe.Pointer) uintptr
	// Reset releases every prior allocation at once.
	Reset()

	Capacity() uintptr
	Used() uintptr
	Remain() uintptr
}

func isPow2(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

// alignUp rounds off up to the next multiple of align.
func alignUp(off, align uintptr) uintptr {
	mask := align - 1
	return (off + mask) & ^mask
}

// mustAlign panics unless align is a usable alignment.
func mustAlign(align uintptr) {
	if !isPow2(align) {
		violation("alignment must be a power of two", "align", align)
	}
}
