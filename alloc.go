package alloc

import "unsafe"

// AcquireSlice allocates n zeroed elements of U from the arena's store.
// Returns nil if n <= 0. U must be plain old data, as for Acquire.
func AcquireSlice[U any, A Allocator](a *Arena[A], n int) ([]U, error) {
	if n <= 0 {
		return nil, nil
	}
	lay := layoutFor[U]()
	total := lay.size * uintptr(n)
	if lay.size != 0 && total/lay.size != uintptr(n) {
		violation("arena: slice size overflows", "elem", lay.size, "n", n)
	}
	raw, err := a.store.AllocAlign(total, lay.align)
	if err != nil {
		return nil, err
	}
	clear(unsafe.Slice((*byte)(raw), total))
	return unsafe.Slice((*U)(raw), n), nil
}

// ReleaseSlice finalizes every element of s and returns its memory to the
// store. s must be exactly a slice returned by AcquireSlice.
func ReleaseSlice[U any, A Allocator](a *Arena[A], s []U) {
	if len(s) == 0 {
		return
	}
	lay := layoutFor[U]()
	for i := range s {
		if f, ok := any(&s[i]).(Finalizer); ok {
			f.Finalize()
		}
	}
	a.store.FreeAlign(unsafe.Pointer(unsafe.SliceData(s)), lay.size*uintptr(len(s)), lay.align)
}
