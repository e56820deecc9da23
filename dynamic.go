package alloc

import "unsafe"

// backend is the minimal dispatch surface of a Dynamic box. adapter
// implements it once per concrete allocator type.
type backend interface {
	alloc(n, align uintptr, dflt bool) (unsafe.Pointer, error)
	free(p unsafe.Pointer, n, align uintptr, dflt bool)
	base() unsafe.Pointer
	offset(p unsafe.Pointer) uintptr
	reset()
	capacity() uintptr
	used() uintptr
	remain() uintptr
	close() error
}

type adapter[A Allocator] struct {
	a A
}

func (d *adapter[A]) alloc(n, align uintptr, dflt bool) (unsafe.Pointer, error) {
	if dflt {
		return d.a.Alloc(n)
	}
	return d.a.AllocAlign(n, align)
}

func (d *adapter[A]) free(p unsafe.Pointer, n, align uintptr, dflt bool) {
	if dflt {
		d.a.Free(p, n)
		return
	}
	d.a.FreeAlign(p, n, align)
}

func (d *adapter[A]) base() unsafe.Pointer            { return d.a.Base() }
func (d *adapter[A]) offset(p unsafe.Pointer) uintptr { return d.a.Offset(p) }
func (d *adapter[A]) reset()                          { d.a.Reset() }
func (d *adapter[A]) capacity() uintptr               { return d.a.Capacity() }
func (d *adapter[A]) used() uintptr                   { return d.a.Used() }
func (d *adapter[A]) remain() uintptr                 { return d.a.Remain() }

func (d *adapter[A]) close() error {
	if c, ok := any(d.a).(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// noCopy lets go vet's copylocks check flag copies of a Dynamic.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Dynamic holds some allocator chosen at run time, so code can keep "an
// allocator" without a type parameter leaking into its own types.
//
// A Dynamic exclusively owns what it wraps. It must not be copied; use Move
// to hand it on. Operating on an empty (moved-from or closed) box panics.
type Dynamic struct {
	noCopy noCopy
	child  backend
}

// Make moves a into a new box. The concrete type is a type argument so it
// can be spelled out at the call site: Make[*Linear](NewLinear(buf)).
func Make[A Allocator](a A) *Dynamic {
	return &Dynamic{child: &adapter[A]{a: a}}
}

// MakeWith boxes the allocator returned by ctor, forwarding its error.
func MakeWith[A Allocator](ctor func() (A, error)) (*Dynamic, error) {
	a, err := ctor()
	if err != nil {
		return nil, err
	}
	return Make[A](a), nil
}

// Move returns a new box owning d's allocator and leaves d empty.
func (d *Dynamic) Move() *Dynamic {
	child := d.get()
	d.child = nil
	return &Dynamic{child: child}
}

// Empty reports whether d has been moved from or closed.
func (d *Dynamic) Empty() bool { return d.child == nil }

func (d *Dynamic) get() backend {
	if d.child == nil {
		violation("dynamic: use of empty box")
	}
	return d.child
}

// Alloc forwards to the wrapped allocator's Alloc.
func (d *Dynamic) Alloc(n uintptr) (unsafe.Pointer, error) {
	return d.get().alloc(n, DefaultAlign, true)
}

// AllocAlign forwards to the wrapped allocator's AllocAlign.
func (d *Dynamic) AllocAlign(n, align uintptr) (unsafe.Pointer, error) {
	return d.get().alloc(n, align, false)
}

// Free forwards to the wrapped allocator's Free.
func (d *Dynamic) Free(p unsafe.Pointer, n uintptr) {
	d.get().free(p, n, DefaultAlign, true)
}

// FreeAlign forwards to the wrapped allocator's FreeAlign.
func (d *Dynamic) FreeAlign(p unsafe.Pointer, n, align uintptr) {
	d.get().free(p, n, align, false)
}

// Base returns the wrapped allocator's Base.
func (d *Dynamic) Base() unsafe.Pointer { return d.get().base() }

// Offset returns the wrapped allocator's Offset of p.
func (d *Dynamic) Offset(p unsafe.Pointer) uintptr { return d.get().offset(p) }

// Reset resets the wrapped allocator.
func (d *Dynamic) Reset() { d.get().reset() }

// Capacity returns the wrapped allocator's Capacity.
func (d *Dynamic) Capacity() uintptr { return d.get().capacity() }

// Used returns the wrapped allocator's Used.
func (d *Dynamic) Used() uintptr { return d.get().used() }

// Remain returns the wrapped allocator's Remain.
func (d *Dynamic) Remain() uintptr { return d.get().remain() }

// Close destroys the wrapped allocator and empties the box. Closing an
// empty box is a no-op.
func (d *Dynamic) Close() error {
	if d.child == nil {
		return nil
	}
	err := d.child.close()
	d.child = nil
	return err
}
