package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// recorder forwards to an Allocator and remembers every call that returns
// memory, so tests can observe frees that the backend itself ignores.
type recorder struct {
	Allocator
	allocs int
	frees  []freed
}

type freed struct {
	p     unsafe.Pointer
	n     uintptr
	align uintptr
}

func (r *recorder) Alloc(n uintptr) (unsafe.Pointer, error) {
	return r.AllocAlign(n, DefaultAlign)
}

func (r *recorder) AllocAlign(n, align uintptr) (unsafe.Pointer, error) {
	p, err := r.Allocator.AllocAlign(n, align)
	if err == nil {
		r.allocs++
	}
	return p, err
}

func (r *recorder) Free(p unsafe.Pointer, n uintptr) {
	r.FreeAlign(p, n, DefaultAlign)
}

func (r *recorder) FreeAlign(p unsafe.Pointer, n, align uintptr) {
	r.frees = append(r.frees, freed{p, n, align})
	r.Allocator.FreeAlign(p, n, align)
}

// counters captures capacity/used/remain for equality checks.
type counters struct {
	capacity, used, remain uintptr
}

func countersOf(a Allocator) counters {
	return counters{a.Capacity(), a.Used(), a.Remain()}
}

func requireAligned(t *testing.T, p unsafe.Pointer, align uintptr) {
	t.Helper()
	require.Zero(t, uintptr(p)%align, "address %p not aligned to %d", p, align)
}

// buffer returns n bytes aligned to at least 8 wherever the compiler places
// them, so tests can rely on offset 0 being DefaultAlign-aligned.
func buffer(n int) []byte {
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n)
}
