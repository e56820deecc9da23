// Package alloc implements composable byte allocators and a typed arena
// on top of them.
//
// # Overview
//
// Every allocator satisfies the Allocator interface, so strategies can be
// assembled from small pieces:
//
//   - Linear: bump allocation over a caller-owned []byte
//   - Null: refuses every allocation
//   - Malloc: pass-through to a platform heap outside the Go GC
//   - Chunked: growable bump allocation over chunks from any upstream
//   - Aligned: decorator forcing one fixed alignment on a successor
//   - Dynamic: a box hiding the concrete allocator type behind one value
//
// # Basic Usage
//
//	buf := make([]byte, 1024)
//	lin := alloc.NewLinear(buf)
//
//	p, err := lin.AllocAlign(64, 16)
//	if errors.Is(err, alloc.ErrExhausted) {
//	    // reset, or retry with a bigger backend
//	}
//
//	lin.Reset() // O(1), invalidates every address handed out so far
//
// # Composition
//
//	// bump-allocate from a fixed buffer, force 64-byte alignment,
//	// and keep the strategy swappable at run time
//	box := alloc.Make(alloc.NewAligned(64, alloc.NewLinear(buf)))
//	defer box.Close()
//
// # Typed Objects
//
// Arena turns raw bytes into initialized objects and back:
//
//	ar := alloc.NewArena(lin)
//	w, err := alloc.Acquire[Widget](ar, func(w *Widget) error {
//	    w.ID = 42
//	    return nil
//	})
//	...
//	alloc.Release(ar, w) // calls w.Finalize() if Widget implements Finalizer
//
//	h, err := alloc.Unique[Widget](ar, nil)
//	defer h.Close()
//
// Allocator memory is invisible to the garbage collector, so only plain old
// data (no pointers, strings, slices, maps, channels, funcs or interfaces)
// can be placed in it. Acquire panics on any other type.
//
// # Errors
//
// Running out of memory is an ordinary error matching ErrExhausted; failed
// allocations leave the allocator untouched. Decorators and Dynamic forward
// errors unchanged.
//
// Caller bugs (freeing a non-nil pointer to Null, asking Malloc for an
// alignment above MallocMaxAlign, using an empty Dynamic) panic. Checks
// that need bookkeeping, such as double release through an Arena or a
// foreign pointer handed to Linear, are compiled in only with the
// allocdebug build tag; without it such misuse is undefined.
//
// # Thread Safety
//
// No allocator is safe for concurrent use. Give each goroutine its own
// allocator or serialize access externally.
package alloc
