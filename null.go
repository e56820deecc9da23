package alloc

import "unsafe"

// Null refuses every allocation. Use it where nothing must ever be
// allocated, or as a loud default when no real backend was supplied.
type Null struct{}

// Alloc always fails with ErrRefused.
func (Null) Alloc(n uintptr) (unsafe.Pointer, error) {
	return Null{}.AllocAlign(n, DefaultAlign)
}

// AllocAlign always fails with ErrRefused.
func (Null) AllocAlign(n, align uintptr) (unsafe.Pointer, error) {
	logger.Debug("null allocator refused request", "bytes", n, "align", align)
	return nil, ErrRefused
}

// Free accepts only nil, like FreeAlign.
func (Null) Free(p unsafe.Pointer, n uintptr) {
	Null{}.FreeAlign(p, n, DefaultAlign)
}

// FreeAlign accepts only nil; Null never handed out anything else.
func (Null) FreeAlign(p unsafe.Pointer, _, _ uintptr) {
	if p != nil {
		violation("null: free of non-nil pointer", "ptr", p)
	}
}

// Base is always nil.
func (Null) Base() unsafe.Pointer { return nil }

// Offset is always 0.
func (Null) Offset(unsafe.Pointer) uintptr { return 0 }

// Reset does nothing.
func (Null) Reset() {}

// Capacity is always 0.
func (Null) Capacity() uintptr { return 0 }

// Used is always 0.
func (Null) Used() uintptr { return 0 }

// Remain is always 0.
func (Null) Remain() uintptr { return 0 }
