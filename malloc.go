package alloc

import (
	"fmt"
	"math"
	"unsafe"

	"modernc.org/memory"
)

// MallocMaxAlign is the largest alignment Malloc guarantees.
const MallocMaxAlign = 2 * unsafe.Sizeof(uintptr(0))

// mallocMaxSize bounds a single request. The platform allocator takes an
// int and adds its own header and page rounding on top of it.
const mallocMaxSize = math.MaxInt >> 1

// Malloc passes requests through to a platform heap that lives outside the
// Go garbage collector. Blocks stay valid until freed, reset or closed.
type Malloc struct {
	heap memory.Allocator
	used uintptr
}

// NewMalloc returns a ready Malloc backend.
func NewMalloc() *Malloc {
	return &Malloc{}
}

// Alloc allocates n bytes at DefaultAlign.
func (m *Malloc) Alloc(n uintptr) (unsafe.Pointer, error) {
	return m.AllocAlign(n, DefaultAlign)
}

// AllocAlign delegates to the platform allocator. Asking for more than
// MallocMaxAlign is a caller bug.
func (m *Malloc) AllocAlign(n, align uintptr) (unsafe.Pointer, error) {
	mustAlign(align)
	if align > MallocMaxAlign {
		violation("malloc: unsupported alignment", "align", align, "max", MallocMaxAlign)
	}
	if n == 0 {
		return unsafe.Pointer(&zeroSized), nil
	}
	if n > mallocMaxSize {
		logger.Debug("malloc request too large", "bytes", n)
		return nil, fmt.Errorf("%w: malloc: %d bytes", ErrExhausted, n)
	}
	p, err := m.heap.UnsafeMalloc(int(n))
	if err != nil {
		logger.Warn("platform allocator failed", "bytes", n, "err", err)
		return nil, fmt.Errorf("%w: malloc: %d bytes: %w", ErrExhausted, n, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: malloc: %d bytes", ErrExhausted, n)
	}
	m.used += n
	return p, nil
}

// Free returns a block obtained from Alloc.
func (m *Malloc) Free(p unsafe.Pointer, n uintptr) {
	m.FreeAlign(p, n, DefaultAlign)
}

// FreeAlign returns p to the platform allocator. The size and alignment
// only feed the Used counter.
func (m *Malloc) FreeAlign(p unsafe.Pointer, n, _ uintptr) {
	if p == nil || n == 0 {
		return
	}
	if err := m.heap.UnsafeFree(p); err != nil {
		violation("malloc: free rejected by platform allocator", "ptr", p, "err", err)
	}
	m.used -= n
}

// Base is nil: platform blocks share no common origin.
func (m *Malloc) Base() unsafe.Pointer { return nil }

// Offset returns the raw address of p.
func (m *Malloc) Offset(p unsafe.Pointer) uintptr { return uintptr(p) }

// Reset releases every outstanding block at once.
func (m *Malloc) Reset() {
	if err := m.Close(); err != nil {
		logger.Warn("platform allocator reset failed", "err", err)
	}
}

// Close releases every outstanding block and the heap's OS resources. The
// Malloc stays usable afterwards.
func (m *Malloc) Close() error {
	m.used = 0
	return m.heap.Close()
}

// Capacity is unbounded as far as the contract can tell.
func (m *Malloc) Capacity() uintptr { return ^uintptr(0) }

// Used returns the bytes currently outstanding.
func (m *Malloc) Used() uintptr { return m.used }

// Remain returns Capacity minus Used.
func (m *Malloc) Remain() uintptr { return m.Capacity() - m.used }

// zeroSized is the address handed out for zero-byte requests.
var zeroSized uintptr
