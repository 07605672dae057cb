package dynarray

import (
	"iter"
	"reflect"

	"github.com/pkg/errors"
)

// Vector is a typed dynamic array backed by an Array of Sizeof[T]() byte elements.
//
// Elements live in memory the garbage collector does not scan, so T must not
// contain Go pointers: no pointers, strings, slices, maps, channels, funcs or
// interfaces, directly or in nested fields. NewVector rejects such types.
type Vector[T any] struct {
	arr       Array
	equatable func(a, b T) bool
}

// NewVector creates a Vector. The options are those of Array.Init.
func NewVector[T any](ops ...Option) (*Vector[T], error) {
	size := Sizeof[T]()
	if size == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "vector: zero-sized element type")
	}
	if typ := reflect.TypeFor[T](); !pointerFree(typ) {
		return nil, errors.Wrapf(ErrInvalidArgument, "vector: element type %s contains pointers", typ)
	}

	v := &Vector[T]{equatable: defaultEqual[T]}
	if err := v.arr.Init(int(size), ops...); err != nil {
		return nil, errors.Wrap(err, "vector")
	}
	return v, nil
}

// Equatable sets a custom equality comparison function for element comparison.
func (v *Vector[T]) Equatable(equatable func(a, b T) bool) *Vector[T] {
	v.equatable = equatable
	return v
}

// Len returns the current number of elements in the vector.
func (v *Vector[T]) Len() int {
	return v.arr.Len()
}

// Cap returns the current capacity of the vector.
func (v *Vector[T]) Cap() int {
	return v.arr.Cap()
}

// Stats returns a snapshot of the underlying array statistics.
func (v *Vector[T]) Stats() Stats {
	return v.arr.Stats()
}

// At returns a pointer to the element at index. Like Array.At, the pointer is
// only valid until the next mutating call.
func (v *Vector[T]) At(index int) (*T, error) {
	b, err := v.arr.At(index)
	if err != nil {
		return nil, err
	}
	return As[T](b), nil
}

// Get returns a copy of the element at index, false if out of range.
func (v *Vector[T]) Get(index int) (T, bool) {
	p, err := v.At(index)
	if err != nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Set overwrites the element at index.
func (v *Vector[T]) Set(index int, value T) error {
	p, err := v.At(index)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Append adds elements to the end of the vector. A single value follows the
// growth policy, several values reserve exactly the room they need.
func (v *Vector[T]) Append(values ...T) error {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return v.arr.Append(BytesOf(&values[0]))
	default:
		return v.arr.Extend(SliceBytes(values), len(values))
	}
}

// Insert places value at position, shifting later elements right.
func (v *Vector[T]) Insert(value T, position int) error {
	return v.arr.Insert(BytesOf(&value), position)
}

// RemoveAt removes the element at the specified index.
func (v *Vector[T]) RemoveAt(index int) error {
	return v.arr.RemoveAt(index)
}

// Reserve makes room for at least capacity elements.
func (v *Vector[T]) Reserve(capacity int) error {
	return v.arr.Reserve(capacity)
}

// Sort sorts the vector in place, see Array.Sort.
func (v *Vector[T]) Sort(compare func(a, b T) int) error {
	if compare == nil {
		return errors.Wrap(ErrInvalidArgument, "sort: nil compare")
	}
	return v.arr.Sort(func(a, b []byte) int {
		return compare(*As[T](a), *As[T](b))
	})
}

// Range iterates over elements using a callback function.
func (v *Vector[T]) Range(fn func(index int, v T) bool) {
	v.arr.Range(func(index int, elem []byte) bool {
		return fn(index, *As[T](elem))
	})
}

// All provides an iterator compatible with range loops.
//
// Example:
//
//	for index, v := range vec.All() {
//		// do something
//	}
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return v.Range
}

// AddIfAbsent adds an element only if it doesn't already exist in the vector.
func (v *Vector[T]) AddIfAbsent(value T) (bool, error) {
	// 已经存在元素不添加
	if idx := v.Index(value); -1 != idx {
		return false, nil
	}
	// 追加元素
	if err := v.Append(value); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the first occurrence of the specified element.
func (v *Vector[T]) Remove(value T) bool {
	// 找到元素位置，并进行移除
	if idx := v.Index(value); -1 != idx {
		return v.RemoveAt(idx) == nil
	}
	return false
}

// RemoveBy removes elements matching a condition with quantity control.
// use limit param to control maximum number of elements to remove (0 = unlimited)
func (v *Vector[T]) RemoveBy(limit int, fn func(index int, v T) bool) int {
	var removed int
	for i := v.Len() - 1; i >= 0; i-- {
		if value, _ := v.Get(i); fn(i, value) {
			_ = v.RemoveAt(i)
			if removed++; removed >= limit && limit > 0 {
				return removed
			}
		}
	}
	return removed
}

// Index finds the first occurrence of an element.
// Index of first match, or -1 if not found
func (v *Vector[T]) Index(value T) int {
	for i := 0; i < v.Len(); i++ {
		if elem, _ := v.Get(i); v.equatable(elem, value) {
			return i
		}
	}
	return -1
}

// LastIndex finds the last occurrence of an element.
// Index of last match, or -1 if not found
func (v *Vector[T]) LastIndex(value T) int {
	for i := v.Len() - 1; i >= 0; i-- {
		if elem, _ := v.Get(i); v.equatable(elem, value) {
			return i
		}
	}
	return -1
}

// ToSlice returns a copy of the elements.
func (v *Vector[T]) ToSlice() []T {
	out := make([]T, v.Len())
	copy(SliceBytes(out), v.arr.Bytes())
	return out
}

// Clear remove all elements.
func (v *Vector[T]) Clear() {
	v.arr.Clear()
}

// Release frees the underlying buffer. The vector is unusable afterwards.
func (v *Vector[T]) Release() error {
	return v.arr.Deinit()
}

func defaultEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// pointerFree reports whether values of t can be stored as raw bytes,
// i.e. t holds no reference the garbage collector needs to see.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
