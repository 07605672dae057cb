package dynarray

import "unsafe"

// Sizeof returns the memory size of type T.
func Sizeof[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// BytesOf returns the memory of *v as a byte slice, suitable for Append and Insert.
// The slice aliases v.
func BytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), Sizeof[T]())
}

// SliceBytes returns the memory of s as a byte slice, suitable for Extend.
// The slice aliases s and is nil only for a nil s.
func SliceBytes[T any](s []T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*Sizeof[T]())
}

// As reinterprets an element's bytes as a *T. b must hold at least
// Sizeof[T]() bytes and start at an address aligned for T, e.g. a slice
// returned by At on an array of T. It panics otherwise.
func As[T any](b []byte) *T {
	var zero T
	if uintptr(len(b)) < unsafe.Sizeof(zero) {
		panic("dynarray: element smaller than target type")
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		panic("dynarray: element misaligned for target type")
	}
	return (*T)(p)
}
