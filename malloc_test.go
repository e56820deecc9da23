package alloc

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMallocAllocFree(t *testing.T) {
	m := NewMalloc()
	defer func() { require.NoError(t, m.Close()) }()

	p, err := m.Alloc(100)
	require.NoError(t, err)
	require.NotNil(t, p)
	requireAligned(t, p, DefaultAlign)
	assert.Equal(t, uintptr(100), m.Used())

	// The block is usable memory.
	b := unsafe.Slice((*byte)(p), 100)
	for i := range b {
		b[i] = byte(i)
	}
	assert.Equal(t, byte(99), b[99])

	q, err := m.AllocAlign(64, MallocMaxAlign)
	require.NoError(t, err)
	requireAligned(t, q, MallocMaxAlign)
	assert.Equal(t, uintptr(164), m.Used())

	m.Free(p, 100)
	m.FreeAlign(q, 64, MallocMaxAlign)
	assert.Zero(t, m.Used())
	assert.Equal(t, m.Capacity(), m.Remain())
}

func TestMallocUnsupportedAlignment(t *testing.T) {
	m := NewMalloc()
	defer m.Close()

	assert.Panics(t, func() { _, _ = m.AllocAlign(8, MallocMaxAlign*2) })
	assert.Panics(t, func() { _, _ = m.AllocAlign(8, 3) })
	assert.Zero(t, m.Used())
}

func TestMallocZeroBytes(t *testing.T) {
	m := NewMalloc()
	defer m.Close()

	p, err := m.Alloc(0)
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Zero(t, m.Used())
	m.Free(p, 0)
	m.Free(nil, 8)
}

func TestMallocReset(t *testing.T) {
	m := NewMalloc()
	defer m.Close()

	for i := 0; i < 10; i++ {
		_, err := m.Alloc(256)
		require.NoError(t, err)
	}
	assert.Equal(t, uintptr(2560), m.Used())

	m.Reset()
	assert.Zero(t, m.Used())

	// Still usable after a reset.
	p, err := m.Alloc(32)
	require.NoError(t, err)
	m.Free(p, 32)
}

func TestMallocTrivia(t *testing.T) {
	m := NewMalloc()
	defer m.Close()

	assert.Nil(t, m.Base())
	x := 0
	assert.Equal(t, uintptr(unsafe.Pointer(&x)), m.Offset(unsafe.Pointer(&x)))
	assert.Equal(t, ^uintptr(0), m.Capacity())
}

func TestMallocHugeRequestExhausted(t *testing.T) {
	m := NewMalloc()
	defer m.Close()

	for _, n := range []uintptr{^uintptr(0) - 64, uintptr(math.MaxInt) + 1, mallocMaxSize + 1} {
		p, err := m.Alloc(n)
		require.ErrorIs(t, err, ErrExhausted, "%d bytes", n)
		assert.Nil(t, p)
		assert.Zero(t, m.Used())
	}

	// Still usable afterwards.
	p, err := m.Alloc(16)
	require.NoError(t, err)
	m.Free(p, 16)
}
