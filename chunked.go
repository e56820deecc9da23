package alloc

import (
	"fmt"
	"unsafe"
)

// DefaultChunkSize is the default chunk size for Chunked (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk is one upstream block carved by its own bump cursor.
type chunk struct {
	lin  *Linear
	base unsafe.Pointer
}

// Chunked is a growable bump allocator. It draws chunks from an upstream
// Allocator and bumps within them; when the current chunk is full it asks
// upstream for another one. Like Linear it never frees single blocks.
type Chunked struct {
	upstream  Allocator
	chunkSize uintptr
	chunks    []chunk
	current   int
}

// NewChunked returns a Chunked drawing chunkSize-byte chunks from upstream.
// If chunkSize is 0, DefaultChunkSize is used. No chunk is requested until
// the first allocation.
func NewChunked(upstream Allocator, chunkSize uintptr) *Chunked {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunked{upstream: upstream, chunkSize: chunkSize}
}

// Alloc allocates n bytes at DefaultAlign.
func (c *Chunked) Alloc(n uintptr) (unsafe.Pointer, error) {
	return c.AllocAlign(n, DefaultAlign)
}

// AllocAlign bumps within the current chunk, growing when it is full.
// Upstream errors are returned unchanged.
func (c *Chunked) AllocAlign(n, align uintptr) (unsafe.Pointer, error) {
	mustAlign(align)

	// Fast path: current chunk.
	if c.current < len(c.chunks) {
		if p, err := c.chunks[c.current].lin.AllocAlign(n, align); err == nil {
			return p, nil
		}
	}
	return c.allocSlow(n, align)
}

// allocSlow tries the chunks after the current one (left over from before a
// Reset) and grows when none fits.
func (c *Chunked) allocSlow(n, align uintptr) (unsafe.Pointer, error) {
	for i := c.current + 1; i < len(c.chunks); i++ {
		if p, err := c.chunks[i].lin.AllocAlign(n, align); err == nil {
			c.current = i
			return p, nil
		}
	}
	if n > ^uintptr(0)-(align-1) {
		return nil, fmt.Errorf("%w: chunked: %d bytes at align %d", ErrExhausted, n, align)
	}
	ch, err := c.newChunk(n + align - 1)
	if err != nil {
		return nil, err
	}
	p, err := ch.lin.AllocAlign(n, align)
	if err != nil {
		// Not kept: a failed allocation leaves the chunk list untouched.
		c.upstream.Free(ch.base, ch.lin.Capacity())
		return nil, err
	}
	c.chunks = append(c.chunks, ch)
	c.current = len(c.chunks) - 1
	logger.Debug("chunked allocator grew", "chunk", ch.lin.Capacity(), "chunks", len(c.chunks))
	return p, nil
}

// newChunk draws a chunk of at least min bytes from upstream.
func (c *Chunked) newChunk(min uintptr) (chunk, error) {
	size := c.chunkSize
	if min > size {
		size = min
	}
	p, err := c.upstream.Alloc(size)
	if err != nil {
		return chunk{}, err
	}
	return chunk{lin: NewLinear(unsafe.Slice((*byte)(p), size)), base: p}, nil
}

// Free is a no-op.
func (c *Chunked) Free(unsafe.Pointer, uintptr) {}

// FreeAlign is a no-op.
func (c *Chunked) FreeAlign(unsafe.Pointer, uintptr, uintptr) {}

// Base returns the start of the first chunk, or nil before any allocation.
func (c *Chunked) Base() unsafe.Pointer {
	if len(c.chunks) == 0 {
		return nil
	}
	return c.chunks[0].base
}

// Offset returns the logical offset of p: the capacities of the chunks
// before the one holding p, plus p's distance into that chunk.
func (c *Chunked) Offset(p unsafe.Pointer) uintptr {
	var before uintptr
	for _, ch := range c.chunks {
		if ch.lin.owns(p) {
			return before + ch.lin.Offset(p)
		}
		before += ch.lin.Capacity()
	}
	violation("chunked: offset of foreign pointer", "ptr", p)
	return 0
}

// Reset rewinds every chunk but keeps them for reuse.
func (c *Chunked) Reset() {
	for _, ch := range c.chunks {
		ch.lin.Reset()
	}
	c.current = 0
}

// Release hands every chunk back upstream.
func (c *Chunked) Release() {
	for _, ch := range c.chunks {
		c.upstream.Free(ch.base, ch.lin.Capacity())
	}
	c.chunks = nil
	c.current = 0
}

// Close is Release, for owners that expect io.Closer.
func (c *Chunked) Close() error {
	c.Release()
	return nil
}

// NumChunks returns the number of chunks drawn from upstream.
func (c *Chunked) NumChunks() int { return len(c.chunks) }

// Capacity returns the total size of all chunks.
func (c *Chunked) Capacity() uintptr {
	var sum uintptr
	for _, ch := range c.chunks {
		sum += ch.lin.Capacity()
	}
	return sum
}

// Used returns the bytes consumed across all chunks.
func (c *Chunked) Used() uintptr {
	var sum uintptr
	for _, ch := range c.chunks {
		sum += ch.lin.Used()
	}
	return sum
}

// Remain returns Capacity minus Used.
func (c *Chunked) Remain() uintptr { return c.Capacity() - c.Used() }
