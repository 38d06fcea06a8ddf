package ovector

import (
	"reflect"
	"unsafe"
)

// Destroyer is implemented by element types that need teardown when they
// leave a Vector. Types without it are cleared by resetting the length.
type Destroyer interface {
	Destroy()
}

// elemSize returns the size of T, panicking if T holds Go pointers: the
// garbage collector never scans a reservation, so such pointers would
// dangle.
func elemSize[T any]() uintptr {
	t := reflect.TypeFor[T]()
	if hasPointers(t) {
		panic("ovector: element type " + t.String() + " contains Go pointers")
	}
	return t.Size()
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// needsTeardown reports whether T's elements must be destroyed one by one.
func needsTeardown[T any]() bool {
	_, ok := any((*T)(nil)).(Destroyer)
	return ok
}

func destroy[T any](p *T) {
	any(p).(Destroyer).Destroy()
}

// slot returns a pointer to element i of the array starting at base.
// No bounds are checked.
func slot[T any](base unsafe.Pointer, i int) *T {
	var zero T
	return (*T)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(zero)))
}
