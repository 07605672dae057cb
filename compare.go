package dynarray

import (
	"bytes"
	"cmp"
)

// Ordered returns a comparator for arrays whose elements are values of T.
func Ordered[T cmp.Ordered]() func(a, b []byte) int {
	return func(a, b []byte) int {
		return cmp.Compare(*As[T](a), *As[T](b))
	}
}

// CompareInt compares two int elements.
func CompareInt(a, b []byte) int {
	return cmp.Compare(*As[int](a), *As[int](b))
}

// CompareInt32 compares two int32 elements.
func CompareInt32(a, b []byte) int {
	return cmp.Compare(*As[int32](a), *As[int32](b))
}

// CompareInt64 compares two int64 elements.
func CompareInt64(a, b []byte) int {
	return cmp.Compare(*As[int64](a), *As[int64](b))
}

// CompareUint64 compares two uint64 elements.
func CompareUint64(a, b []byte) int {
	return cmp.Compare(*As[uint64](a), *As[uint64](b))
}

// CompareFloat64 compares two float64 elements. NaN sorts before every other value.
func CompareFloat64(a, b []byte) int {
	return cmp.Compare(*As[float64](a), *As[float64](b))
}

// CompareBytes compares elements lexicographically as raw bytes.
var CompareBytes = bytes.Compare
