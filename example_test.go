package alloc_test

import (
	"errors"
	"fmt"

	"github.com/pavanmanishd/alloc"
)

type Point struct {
	X, Y int32
}

// Example demonstrates basic bump allocation
func Example() {
	lin := alloc.Make(alloc.NewLinear(make([]byte, 1024)))
	defer lin.Close()

	p, _ := lin.Alloc(1024)
	fmt.Printf("First block at offset %d\n", lin.Offset(p))

	_, err := lin.Alloc(1)
	fmt.Printf("Exhausted: %v\n", errors.Is(err, alloc.ErrExhausted))

	// Reset for reuse (O(1) operation)
	lin.Reset()
	p, _ = lin.Alloc(1)
	fmt.Printf("After reset, offset %d, used %d bytes\n", lin.Offset(p), lin.Used())

	// Output:
	// First block at offset 0
	// Exhausted: true
	// After reset, offset 0, used 1 bytes
}

// ExampleMake demonstrates composing a chain behind one concrete type
func ExampleMake() {
	// bump-allocate from a fixed buffer, force 64-byte alignment,
	// keep the strategy swappable at run time
	box := alloc.Make(alloc.NewAligned(64, alloc.NewLinear(make([]byte, 4096))))
	defer box.Close()

	a, _ := box.Alloc(1)
	b, _ := box.Alloc(1)
	fmt.Printf("Distance between blocks: %d\n", box.Offset(b)-box.Offset(a))

	// Same type, a chain that must never allocate
	var guard *alloc.Dynamic = alloc.Make(alloc.NewAligned(64, alloc.Null{}))
	_, err := guard.Alloc(1)
	fmt.Println(err)

	// Output:
	// Distance between blocks: 64
	// alloc: allocation refused by null allocator
}

// ExampleAcquire demonstrates typed objects over a byte allocator
func ExampleAcquire() {
	ar := alloc.NewArena(alloc.NewLinear(make([]byte, 256)))

	pt, err := alloc.Acquire[Point](ar, func(p *Point) error {
		p.X, p.Y = 3, 4
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Point: %+v\n", *pt)
	alloc.Release(ar, pt)

	h, _ := alloc.Unique[Point](ar, nil)
	defer h.Close()
	fmt.Printf("Zero point: %+v\n", *h.Get())

	// Output:
	// Point: {X:3 Y:4}
	// Zero point: {X:0 Y:0}
}

// ExampleSnapshot demonstrates monitoring allocator usage
func ExampleSnapshot() {
	box := alloc.Make(alloc.NewLinear(make([]byte, 1024)))
	defer box.Close()
	_, _ = box.Alloc(100) // padded to the next 8-byte boundary
	_, _ = box.Alloc(50)

	s := alloc.Snapshot(box)
	fmt.Printf("Capacity: %d bytes\n", s.Capacity)
	fmt.Printf("Used: %d bytes\n", s.Used)
	fmt.Printf("Remain: %d bytes\n", s.Remain)

	// Output:
	// Capacity: 1024 bytes
	// Used: 154 bytes
	// Remain: 870 bytes
}
