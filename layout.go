package alloc

import (
	"fmt"
	"reflect"
	"sync"
)

// layout is the size and alignment of a type placed in allocator memory.
type layout struct {
	size  uintptr
	align uintptr
}

// layouts caches layoutFor results per type; the value is a layout or a
// string describing why the type cannot be placed.
var layouts sync.Map

// layoutFor returns the layout of T, panicking if T holds pointers. The GC
// does not scan allocator memory, so a pointer stored there would dangle.
func layoutFor[T any]() layout {
	ty := reflect.TypeFor[T]()
	v, ok := layouts.Load(ty)
	if !ok {
		if problem := podProblem(ty); problem != "" {
			v = problem
		} else {
			v = layout{size: ty.Size(), align: uintptr(ty.Align())}
		}
		layouts.Store(ty, v)
	}
	if problem, bad := v.(string); bad {
		violation("arena: type cannot live in allocator memory: " + problem)
	}
	return v.(layout)
}

// podProblem returns "" if ty is plain old data, or a description of the
// first pointer-carrying part it finds.
//
// Recursion terminates: a type can only refer to itself through a pointer,
// and pointers stop the walk.
func podProblem(ty reflect.Type) string {
	switch ty.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return ""
	case reflect.Array:
		if problem := podProblem(ty.Elem()); problem != "" {
			return "array element " + problem
		}
		return ""
	case reflect.Struct:
		for i := 0; i < ty.NumField(); i++ {
			f := ty.Field(i)
			if problem := podProblem(f.Type); problem != "" {
				return fmt.Sprintf("struct %s field %q: %s", ty, f.Name, problem)
			}
		}
		return ""
	default:
		return fmt.Sprintf("type %s contains pointers", ty)
	}
}
