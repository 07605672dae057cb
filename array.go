// Package dynarray provides a growable array of fixed-size elements stored
// contiguously in one buffer, with an in-place quicksort.
//
// Array is type-erased: every element is an opaque run of ItemSize bytes,
// copied verbatim. Vector is the typed form built on top of it.
//
// An Array is not safe for concurrent use.
package dynarray

import (
	"iter"
	"math"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Array is a dynamic array of fixed-size elements. The zero value is
// uninitialized, call Init (or use New) before anything else.
type Array struct {
	buf      []byte // block trimmed to itemSize*capacity
	block    []byte // as returned by Memory.Alloc
	itemSize int
	length   int
	capacity int
	reallocs int
	opts     options
}

// New creates and initializes an Array of itemSize-byte elements.
func New(itemSize int, ops ...Option) (*Array, error) {
	a := &Array{}
	if err := a.Init(itemSize, ops...); err != nil {
		return nil, err
	}
	return a, nil
}

// Init allocates the initial buffer. The array must be uninitialized:
// initializing twice returns ErrState.
func (a *Array) Init(itemSize int, ops ...Option) error {
	if a.buf != nil || a.capacity != 0 {
		return errors.Wrap(ErrState, "init: array already initialized")
	}
	if itemSize <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "init: item size %d", itemSize)
	}

	opts, err := newOptions(ops)
	if err != nil {
		return errors.Wrap(err, "init")
	}

	size, ok := mulSize(itemSize, opts.initialCapacity)
	if !ok {
		return errors.Wrapf(ErrAllocation, "init: %d items of %d bytes overflow", opts.initialCapacity, itemSize)
	}
	buf, block := allocate(opts.memory, size)
	if buf == nil {
		level.Warn(opts.logger).Log("msg", "array allocation failed", "bytes", size)
		return errors.Wrapf(ErrAllocation, "init: %d bytes", size)
	}

	*a = Array{
		buf:      buf,
		block:    block,
		itemSize: itemSize,
		capacity: opts.initialCapacity,
		opts:     opts,
	}
	level.Debug(opts.logger).Log("msg", "array initialized", "item_size", itemSize, "capacity", a.capacity, "growth", opts.growth)
	return nil
}

// Deinit releases the buffer and resets the array to the zero state.
// Calling it on an uninitialized array, including a second time, returns ErrState.
func (a *Array) Deinit() error {
	if !a.initialized() {
		return errors.Wrap(ErrState, "deinit: array not initialized")
	}

	opts := a.opts
	opts.memory.Free(a.block)
	*a = Array{}
	level.Debug(opts.logger).Log("msg", "array released")
	return nil
}

// Initialized reports whether the array owns a buffer.
func (a *Array) Initialized() bool {
	return a.initialized()
}

func (a *Array) initialized() bool {
	return a.buf != nil && a.capacity > 0
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return a.length
}

// Cap returns the number of elements the buffer holds without reallocating.
func (a *Array) Cap() int {
	return a.capacity
}

// ItemSize returns the byte size of one element, 0 when uninitialized.
func (a *Array) ItemSize() int {
	return a.itemSize
}

// At returns the bytes of the element at index.
//
// The returned slice aliases the array's buffer: writes through it change the
// element. It is only valid until the next mutating call. Growth moves the
// buffer, after which the slice no longer refers to the array.
func (a *Array) At(index int) ([]byte, error) {
	if index < 0 || index >= a.length {
		return nil, errors.Wrapf(ErrIndex, "at %d: length %d", index, a.length)
	}
	return a.slot(index), nil
}

// Bytes returns the used part of the buffer, Len()*ItemSize() bytes.
// The same aliasing rules as At apply.
func (a *Array) Bytes() []byte {
	n := a.length * a.itemSize
	return a.buf[:n:n]
}

// Append copies one element to the end, growing the buffer if it is full.
func (a *Array) Append(elem []byte) error {
	if !a.initialized() {
		return errors.Wrap(ErrState, "append: array not initialized")
	}
	if err := a.checkElem(elem); err != nil {
		return errors.Wrap(err, "append")
	}
	if a.length == a.capacity {
		if err := a.grow(); err != nil {
			return errors.Wrap(err, "append")
		}
	}

	copy(a.slot(a.length), elem)
	a.length++
	return nil
}

// Extend appends count elements read contiguously from elems.
// The capacity is raised to exactly Len()+count if needed (see Reserve).
func (a *Array) Extend(elems []byte, count int) error {
	if !a.initialized() {
		return errors.Wrap(ErrState, "extend: array not initialized")
	}
	if elems == nil {
		return errors.Wrap(ErrInvalidArgument, "extend: nil elements")
	}
	if count < 0 {
		return errors.Wrapf(ErrInvalidArgument, "extend: count %d", count)
	}
	if count == 0 {
		return nil
	}

	n, ok := mulSize(count, a.itemSize)
	if !ok {
		return errors.Wrapf(ErrAllocation, "extend: %d items of %d bytes overflow", count, a.itemSize)
	}
	if len(elems) < n {
		return errors.Wrapf(ErrInvalidArgument, "extend: %d bytes for %d items of %d bytes", len(elems), count, a.itemSize)
	}
	if count > math.MaxInt-a.length {
		return errors.Wrapf(ErrAllocation, "extend: length %d + %d overflows", a.length, count)
	}
	if err := a.Reserve(a.length + count); err != nil {
		return errors.Wrap(err, "extend")
	}

	copy(a.buf[a.length*a.itemSize:], elems[:n])
	a.length += count
	return nil
}

// Insert copies elem to position, shifting the elements at [position, Len())
// one slot to the right. position == Len() appends.
func (a *Array) Insert(elem []byte, position int) error {
	if !a.initialized() {
		return errors.Wrap(ErrState, "insert: array not initialized")
	}
	if err := a.checkElem(elem); err != nil {
		return errors.Wrap(err, "insert")
	}
	if position < 0 || position > a.length {
		return errors.Wrapf(ErrIndex, "insert at %d: length %d", position, a.length)
	}
	if a.length == a.capacity {
		if err := a.grow(); err != nil {
			return errors.Wrap(err, "insert")
		}
	}

	off := position * a.itemSize
	end := a.length * a.itemSize
	copy(a.buf[off+a.itemSize:end+a.itemSize], a.buf[off:end])
	copy(a.slot(position), elem)
	a.length++
	return nil
}

// Reserve makes sure the array holds at least capacity elements without
// reallocating. It is a floor, not an increment: asking for less than Cap()
// does nothing. On failure the array is unchanged.
func (a *Array) Reserve(capacity int) error {
	if !a.initialized() {
		return errors.Wrap(ErrState, "reserve: array not initialized")
	}
	if capacity < 0 {
		return errors.Wrapf(ErrInvalidArgument, "reserve: capacity %d", capacity)
	}
	if capacity <= a.capacity {
		return nil
	}

	level.Debug(a.opts.logger).Log("msg", "reserving", "from", a.capacity, "to", capacity)
	return a.realloc(capacity)
}

// RemoveAt deletes the element at position, shifting the following elements
// one slot to the left. Element bytes are discarded as is: release anything
// they reference before removing them.
func (a *Array) RemoveAt(position int) error {
	if position < 0 || position >= a.length {
		return errors.Wrapf(ErrIndex, "remove at %d: length %d", position, a.length)
	}

	off := position * a.itemSize
	copy(a.buf[off:], a.buf[off+a.itemSize:a.length*a.itemSize])
	a.length--
	return nil
}

// Clear drops all elements. The capacity and buffer are kept.
func (a *Array) Clear() {
	a.length = 0
}

// Range calls fn for every element in order until fn returns false.
// fn must not mutate the array.
func (a *Array) Range(fn func(index int, elem []byte) bool) {
	for i := 0; i < a.length; i++ {
		if !fn(i, a.slot(i)) {
			return
		}
	}
}

// All provides an iterator compatible with range loops.
//
// Example:
//
//	for index, elem := range arr.All() {
//		// do something
//	}
func (a *Array) All() iter.Seq2[int, []byte] {
	return a.Range
}

// slot returns the bytes of element i, which must be < capacity.
func (a *Array) slot(i int) []byte {
	off := i * a.itemSize
	return a.buf[off : off+a.itemSize : off+a.itemSize]
}

func (a *Array) checkElem(elem []byte) error {
	if elem == nil {
		return errors.Wrap(ErrInvalidArgument, "nil element")
	}
	if len(elem) != a.itemSize {
		return errors.Wrapf(ErrInvalidArgument, "element of %d bytes, want %d", len(elem), a.itemSize)
	}
	return nil
}

// grow raises the capacity according to the growth policy.
func (a *Array) grow() error {
	capacity, ok := a.opts.growth.next(a.capacity)
	if !ok || capacity <= a.length {
		return errors.Wrapf(ErrAllocation, "grow: no capacity after %d with %s growth", a.capacity, a.opts.growth)
	}

	level.Debug(a.opts.logger).Log("msg", "growing", "from", a.capacity, "to", capacity, "growth", a.opts.growth)
	return a.realloc(capacity)
}

// realloc moves the elements into a new buffer of capacity elements.
// The old buffer is released only once the new one was obtained.
func (a *Array) realloc(capacity int) error {
	size, ok := mulSize(capacity, a.itemSize)
	if !ok {
		return errors.Wrapf(ErrAllocation, "%d items of %d bytes overflow", capacity, a.itemSize)
	}
	buf, block := allocate(a.opts.memory, size)
	if buf == nil {
		level.Warn(a.opts.logger).Log("msg", "array reallocation failed", "bytes", size, "capacity", a.capacity, "length", a.length)
		return errors.Wrapf(ErrAllocation, "reallocate %d bytes", size)
	}

	copy(buf, a.buf[:a.length*a.itemSize])
	a.opts.memory.Free(a.block)
	a.buf = buf
	a.block = block
	a.capacity = capacity
	a.reallocs++
	return nil
}
