package alloc

import "unsafe"

// Aligned forces one fixed alignment on every allocation made through it
// and forwards everything else to its successor unchanged.
//
// The alignment is fixed at construction. A per-call alignment passed to
// AllocAlign is ignored rather than combined with it; a different alignment
// needs a different Aligned.
type Aligned[A Allocator] struct {
	next  A
	align uintptr
}

// NewAligned wraps next so that every allocation is aligned to align.
func NewAligned[A Allocator](align uintptr, next A) *Aligned[A] {
	mustAlign(align)
	return &Aligned[A]{next: next, align: align}
}

// Alloc allocates n bytes at the fixed alignment.
func (a *Aligned[A]) Alloc(n uintptr) (unsafe.Pointer, error) {
	return a.next.AllocAlign(n, a.align)
}

// AllocAlign ignores align and uses the decorator's own alignment.
func (a *Aligned[A]) AllocAlign(n, _ uintptr) (unsafe.Pointer, error) {
	return a.next.AllocAlign(n, a.align)
}

// Free returns p to the successor at the fixed alignment.
func (a *Aligned[A]) Free(p unsafe.Pointer, n uintptr) {
	a.next.FreeAlign(p, n, a.align)
}

// FreeAlign ignores align, like AllocAlign.
func (a *Aligned[A]) FreeAlign(p unsafe.Pointer, n, _ uintptr) {
	a.next.FreeAlign(p, n, a.align)
}

// Base returns the successor's Base.
func (a *Aligned[A]) Base() unsafe.Pointer { return a.next.Base() }

// Offset returns the successor's Offset of p.
func (a *Aligned[A]) Offset(p unsafe.Pointer) uintptr { return a.next.Offset(p) }

// Reset resets the successor.
func (a *Aligned[A]) Reset() { a.next.Reset() }

// Capacity returns the successor's Capacity.
func (a *Aligned[A]) Capacity() uintptr { return a.next.Capacity() }

// Used returns the successor's Used.
func (a *Aligned[A]) Used() uintptr { return a.next.Used() }

// Remain returns the successor's Remain.
func (a *Aligned[A]) Remain() uintptr { return a.next.Remain() }

// Align returns the fixed alignment.
func (a *Aligned[A]) Align() uintptr { return a.align }

// Unwrap returns the successor.
func (a *Aligned[A]) Unwrap() A { return a.next }

// Close closes the successor if it has a Close method.
func (a *Aligned[A]) Close() error {
	if c, ok := any(a.next).(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
