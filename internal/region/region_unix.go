//go:build unix

package region

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map reserves size bytes of anonymous, private, read-write memory outside
// the Go heap. The returned cleanup unmaps it; calling cleanup twice is a
// no-op.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return []byte{}, func() error { return nil }, nil
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("region: mmap %d bytes: %w", size, err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}

// Mapped reports whether Map returns memory outside the Go heap.
const Mapped = true
