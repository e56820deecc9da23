package alloc

import (
	"fmt"
	"unsafe"
)

// Linear is a bump allocator over a caller-owned byte range.
//
// Each allocation advances a single cursor; memory comes back only all at
// once through Reset. The buffer is referenced, never owned: Linear keeps
// it reachable but it is up to the caller to keep it valid (for example an
// mmap'ed region that must not be unmapped while in use).
type Linear struct {
	buf    []byte
	begin  unsafe.Pointer
	size   uintptr
	cursor uintptr // offset from begin, always <= size
}

// NewLinear returns a Linear allocator partitioning buf.
func NewLinear(buf []byte) *Linear {
	return &Linear{
		buf:   buf,
		begin: unsafe.Pointer(unsafe.SliceData(buf)),
		size:  uintptr(len(buf)),
	}
}

// Alloc allocates n bytes at DefaultAlign.
func (l *Linear) Alloc(n uintptr) (unsafe.Pointer, error) {
	return l.AllocAlign(n, DefaultAlign)
}

// AllocAlign returns the first address at or after the cursor that is a
// multiple of align and moves the cursor n bytes past it. On failure the
// cursor does not move. A zero-byte request always succeeds with a non-nil
// address.
func (l *Linear) AllocAlign(n, align uintptr) (unsafe.Pointer, error) {
	mustAlign(align)

	// Align the address, not the offset: the buffer itself may start anywhere.
	start := alignUp(uintptr(l.begin)+l.cursor, align) - uintptr(l.begin)
	if n == 0 {
		if l.begin == nil {
			// No buffer to point into; hand out the shared zero-size address.
			return unsafe.Pointer(&zeroSized), nil
		}
		if start > l.size {
			start = l.cursor
		}
		return unsafe.Add(l.begin, start), nil
	}
	if start > l.size || n > l.size-start {
		logger.Debug("linear allocator exhausted", "bytes", n, "align", align, "remain", l.Remain())
		return nil, fmt.Errorf("%w: linear: %d bytes at align %d, %d remaining", ErrExhausted, n, align, l.Remain())
	}
	l.cursor = start + n
	return unsafe.Add(l.begin, start), nil
}

// Free is a no-op; bump allocations are reclaimed only by Reset.
func (l *Linear) Free(p unsafe.Pointer, n uintptr) {
	l.FreeAlign(p, n, DefaultAlign)
}

// FreeAlign is a no-op; see Free.
func (l *Linear) FreeAlign(p unsafe.Pointer, _, _ uintptr) {
	if debugChecks && p != nil && p != unsafe.Pointer(&zeroSized) && !l.owns(p) {
		violation("linear: free of foreign pointer", "ptr", p)
	}
}

// Base returns the start of the range.
func (l *Linear) Base() unsafe.Pointer { return l.begin }

// Offset returns the distance of p from Base. p must come from this allocator.
func (l *Linear) Offset(p unsafe.Pointer) uintptr {
	return uintptr(p) - uintptr(l.begin)
}

// Reset rewinds the cursor to the beginning. Every address handed out so
// far becomes invalid; nothing tracks whether callers still hold them.
func (l *Linear) Reset() { l.cursor = 0 }

// Capacity returns the size of the range in bytes.
func (l *Linear) Capacity() uintptr { return l.size }

// Used returns the bytes consumed so far, alignment padding included.
func (l *Linear) Used() uintptr { return l.cursor }

// Remain returns the bytes left after the cursor.
func (l *Linear) Remain() uintptr { return l.size - l.cursor }

func (l *Linear) owns(p unsafe.Pointer) bool {
	off := uintptr(p) - uintptr(l.begin)
	return uintptr(p) >= uintptr(l.begin) && off < l.size
}
