package alloc

import "unsafe"

// Arena places typed objects in memory obtained from a byte allocator.
//
// The arena only references its store; it never owns it, so one store can
// back several arenas of different object types at once. The store must
// outlive every arena using it. Objects are owned by whoever acquired them.
type Arena[A Allocator] struct {
	store A
	live  map[uintptr]struct{} // allocdebug only
}

// NewArena returns an arena over store.
func NewArena[A Allocator](store A) *Arena[A] {
	a := &Arena[A]{store: store}
	if debugChecks {
		a.live = make(map[uintptr]struct{})
	}
	return a
}

// Store returns the underlying allocator.
func (a *Arena[A]) Store() A { return a.store }

// Finalizer is implemented by types that need cleanup before their memory
// is returned by Release.
type Finalizer interface {
	Finalize()
}

// Acquire allocates storage for a U, zeroes it and runs init on it. A nil
// init leaves the zero value.
//
// If init fails or panics, the storage is freed before the error or panic
// propagates unchanged. U must be plain old data: the garbage collector
// does not see allocator memory, so U may not contain pointers, strings,
// slices, maps, channels, funcs or interfaces.
func Acquire[U any, A Allocator](a *Arena[A], init func(*U) error) (*U, error) {
	lay := layoutFor[U]()
	raw, err := a.store.AllocAlign(lay.size, lay.align)
	if err != nil {
		return nil, err
	}
	clear(unsafe.Slice((*byte)(raw), lay.size))
	p := (*U)(raw)

	if init != nil {
		constructed := false
		defer func() {
			if !constructed {
				a.store.FreeAlign(raw, lay.size, lay.align)
			}
		}()
		if err := init(p); err != nil {
			return nil, err
		}
		constructed = true
	}
	a.track(raw, lay.size)
	return p, nil
}

// Release finalizes *p and returns its memory to the store. Releasing twice,
// releasing a pointer from elsewhere, or releasing after the store was reset
// are caller bugs.
func Release[U any, A Allocator](a *Arena[A], p *U) {
	lay := layoutFor[U]()
	raw := unsafe.Pointer(p)
	a.untrack(raw, lay.size)
	if f, ok := any(p).(Finalizer); ok {
		f.Finalize()
	}
	a.store.FreeAlign(raw, lay.size, lay.align)
}

// Handle owns one object acquired through Unique.
type Handle[U any, A Allocator] struct {
	arena *Arena[A]
	p     *U
}

// Unique is Acquire returning an owning handle. Close the handle, typically
// with defer, to release the object.
func Unique[U any, A Allocator](a *Arena[A], init func(*U) error) (*Handle[U, A], error) {
	p, err := Acquire[U](a, init)
	if err != nil {
		return nil, err
	}
	return &Handle[U, A]{arena: a, p: p}, nil
}

// Get returns the object, or nil once the handle is closed.
func (h *Handle[U, A]) Get() *U { return h.p }

// Close releases the object. Only the first call does anything.
func (h *Handle[U, A]) Close() error {
	if h.p == nil {
		return nil
	}
	p := h.p
	h.p = nil
	Release(h.arena, p)
	return nil
}

// Zero-sized objects may share an address and are not tracked.
func (a *Arena[A]) track(p unsafe.Pointer, size uintptr) {
	if !debugChecks || size == 0 {
		return
	}
	a.live[uintptr(p)] = struct{}{}
}

func (a *Arena[A]) untrack(p unsafe.Pointer, size uintptr) {
	if !debugChecks || size == 0 {
		return
	}
	if _, ok := a.live[uintptr(p)]; !ok {
		violation("arena: release of pointer not live in this arena", "ptr", p)
	}
	delete(a.live, uintptr(p))
}
