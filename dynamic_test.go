package alloc

import (
	"errors"
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trace is the observable outcome of one step of a script.
type trace struct {
	p   unsafe.Pointer
	err bool
	counters
}

// runSequence drives a with a fixed-seed mix of allocations, frees and
// resets and records every step.
func runSequence(a Allocator, seed int64, steps int) []trace {
	rng := rand.New(rand.NewSource(seed))
	var out []trace
	var last unsafe.Pointer
	var lastN uintptr
	for i := 0; i < steps; i++ {
		var tr trace
		switch op := rng.Intn(10); {
		case op < 6:
			n := uintptr(rng.Intn(200))
			p, err := a.AllocAlign(n, uintptr(1)<<rng.Intn(7))
			tr.p, tr.err = p, err != nil
			if err == nil && n > 0 {
				last, lastN = p, n
			}
		case op < 7:
			p, err := a.Alloc(uintptr(rng.Intn(64)))
			tr.p, tr.err = p, err != nil
		case op < 9:
			a.Free(last, lastN)
		default:
			a.Reset()
			last, lastN = nil, 0
		}
		tr.counters = countersOf(a)
		out = append(out, tr)
	}
	return out
}

func TestDynamicTransparency(t *testing.T) {
	buf := buffer(2048)

	for seed := int64(1); seed <= 5; seed++ {
		bare := runSequence(NewLinear(buf), seed, 300)

		box := Make[*Linear](NewLinear(buf))
		boxed := runSequence(box, seed, 300)
		require.NoError(t, box.Close())

		require.Equal(t, bare, boxed, "seed %d", seed)
	}
}

func TestDynamicTransparencyAligned(t *testing.T) {
	buf := buffer(4096)

	bare := runSequence(NewAligned(64, NewLinear(buf)), 99, 200)
	box := Make(NewAligned(64, NewLinear(buf)))
	defer box.Close()
	require.Equal(t, bare, runSequence(box, 99, 200))
}

func TestDynamicForwardsErrorsUnchanged(t *testing.T) {
	box := Make(Null{})
	_, err := box.Alloc(1)
	assert.Equal(t, ErrRefused, err)

	lin := NewLinear(buffer(8))
	box = Make(lin)
	_, err = box.Alloc(9)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestDynamicMove(t *testing.T) {
	src := Make(NewLinear(buffer(64)))
	_, err := src.Alloc(8)
	require.NoError(t, err)

	dst := src.Move()
	assert.True(t, src.Empty())
	assert.False(t, dst.Empty())
	assert.Equal(t, uintptr(8), dst.Used(), "moved box keeps the allocator's state")

	assert.Panics(t, func() { _, _ = src.Alloc(1) })
	assert.Panics(t, func() { src.Reset() })
	assert.Panics(t, func() { src.Move() })
	assert.NoError(t, src.Close(), "closing an empty box is a no-op")
}

type closeCounter struct {
	Null
	closed int
	err    error
}

func (c *closeCounter) Close() error {
	c.closed++
	return c.err
}

func TestDynamicCloseDestroysChild(t *testing.T) {
	cc := &closeCounter{err: errors.New("boom")}
	box := Make(cc)

	err := box.Close()
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, cc.closed)
	assert.True(t, box.Empty())

	require.NoError(t, box.Close())
	assert.Equal(t, 1, cc.closed)
}

func TestMakeWith(t *testing.T) {
	box, err := MakeWith(func() (*Malloc, error) { return NewMalloc(), nil })
	require.NoError(t, err)
	defer box.Close()

	p, err := box.AllocAlign(32, 16)
	require.NoError(t, err)
	assert.Equal(t, uintptr(32), box.Used())
	box.FreeAlign(p, 32, 16)
	assert.Zero(t, box.Used())

	ctorErr := errors.New("no backend")
	box, err = MakeWith(func() (*Linear, error) { return nil, ctorErr })
	require.ErrorIs(t, err, ctorErr)
	assert.Nil(t, box)
}

func TestDynamicHeterogeneous(t *testing.T) {
	boxes := []*Dynamic{
		Make(NewLinear(buffer(256))),
		Make(Null{}),
		Make(NewMalloc()),
		Make(NewAligned(32, NewLinear(buffer(256)))),
	}
	for i, b := range boxes {
		_, err := b.Alloc(16)
		if i == 1 {
			require.ErrorIs(t, err, ErrExhausted)
		} else {
			require.NoError(t, err)
		}
		require.NoError(t, b.Close())
	}
}
