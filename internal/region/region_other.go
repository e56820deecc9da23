//go:build !unix

package region

// Map falls back to a Go heap slice when mmap is not available.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return []byte{}, func() error { return nil }, nil
	}
	return make([]byte, size), func() error { return nil }, nil
}

const Mapped = false
