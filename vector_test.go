package dynarray

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type player struct {
	id    int32
	score int32
}

func (p player) equals(dst player) bool {
	return p.id == dst.id
}

func newVector[T any](t *testing.T, ops ...Option) *Vector[T] {
	t.Helper()
	vec, err := NewVector[T](ops...)
	require.NoError(t, err)
	return vec
}

func TestNewVector(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	assert.Equal(t, 0, vec.Len())
	assert.Equal(t, 8, vec.Cap())
	assert.Equal(t, intSize, vec.Stats().ItemSize)
}

func TestNewVector_RejectsUnsupportedTypes(t *testing.T) {
	type withString struct {
		id   int
		name string
	}
	type nested struct {
		inner [2]struct{ p *int }
	}

	_, err := NewVector[struct{}]()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewVector[string]()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewVector[*int]()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewVector[[]byte]()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewVector[any]()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewVector[withString]()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewVector[nested]()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewVector[int](WithInitialCapacity(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPointerFree(t *testing.T) {
	type point struct {
		x, y float64
	}
	type grid struct {
		cells [4][4]point
		flag  bool
		_     [0]*int
	}
	_, err := NewVector[point]()
	assert.NoError(t, err)
	_, err = NewVector[grid]()
	assert.NoError(t, err)
	_, err = NewVector[[16]byte]()
	assert.NoError(t, err)
	_, err = NewVector[complex128]()
	assert.NoError(t, err)
}

func TestVector_AddIfAbsent(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	for _, v := range []int{1, 2, 3} {
		added, err := vec.AddIfAbsent(v)
		require.NoError(t, err)
		assert.Equal(t, true, added)
	}
	added, err := vec.AddIfAbsent(3)
	require.NoError(t, err)
	assert.Equal(t, false, added)
	assert.Equal(t, 3, vec.Len())
}

func TestVector_Append(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(1, 2, 3))
	assert.Equal(t, 3, vec.Len())
	for i := 4; i <= 9; i++ {
		require.NoError(t, vec.Append(i))
	}
	require.NoError(t, vec.Append())
	assert.Equal(t, 9, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		v, ok := vec.Get(i)
		assert.True(t, ok)
		assert.Equal(t, i+1, v)
	}
}

func TestVector_At(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3))
	assert.Equal(t, 4, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		p, err := vec.At(i)
		require.NoError(t, err)
		assert.Equal(t, i, *p)
	}

	p, err := vec.At(2)
	require.NoError(t, err)
	*p = 20
	v, _ := vec.Get(2)
	assert.Equal(t, 20, v)

	_, err = vec.At(4)
	assert.ErrorIs(t, err, ErrIndex)
	_, ok := vec.Get(-1)
	assert.False(t, ok)
}

func TestVector_Set(t *testing.T) {
	vec := newVector[player](t)
	require.NoError(t, vec.Append(player{id: 1}, player{id: 2}))
	require.NoError(t, vec.Set(1, player{id: 2, score: 50}))
	assert.Equal(t, []player{{id: 1}, {id: 2, score: 50}}, vec.ToSlice())
	assert.ErrorIs(t, vec.Set(2, player{}), ErrIndex)
}

func TestVector_Cap(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	assert.Equal(t, 8, vec.Cap())
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7))
	assert.Equal(t, 8, vec.Len())
	assert.Equal(t, 8, vec.Cap())

	// several values reserve exactly the room they need
	require.NoError(t, vec.Append(8, 9, 10))
	assert.Equal(t, 11, vec.Len())
	assert.Equal(t, 11, vec.Cap())

	// a single value follows the growth policy
	require.NoError(t, vec.Append(11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21))
	require.NoError(t, vec.Append(22))
	assert.Equal(t, 44, vec.Cap())
}

func TestVector_Equatable(t *testing.T) {
	vec := newVector[player](t, WithInitialCapacity(8))
	vec.Equatable(func(a, b player) bool {
		return a.equals(b)
	})

	_, err := vec.AddIfAbsent(player{id: 1, score: 111})
	require.NoError(t, err)
	assert.Equal(t, 1, vec.Len())
	_, err = vec.AddIfAbsent(player{id: 1, score: 222})
	require.NoError(t, err)
	assert.Equal(t, 1, vec.Len())
	_, err = vec.AddIfAbsent(player{id: 2, score: 333})
	require.NoError(t, err)
	assert.Equal(t, 2, vec.Len())
}

func TestVector_Index(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	assert.Equal(t, 10, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		assert.Equal(t, i, vec.Index(i))
	}
	assert.Equal(t, -1, vec.Index(10))
}

func TestVector_All(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	assert.Equal(t, 10, vec.Len())

	n := 0
	for index, v := range vec.All() {
		assert.Equal(t, index, v)
		n++
	}
	assert.Equal(t, 10, n)
}

func TestVector_LastIndex(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	assert.Equal(t, 10, vec.Len())

	for i := 0; i < vec.Len(); i++ {
		assert.Equal(t, i, vec.LastIndex(i))
	}

	require.NoError(t, vec.Append(3))
	assert.Equal(t, 3, vec.Index(3))
	assert.Equal(t, 10, vec.LastIndex(3))
	assert.Equal(t, -1, vec.LastIndex(42))
}

func TestVector_Range(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))

	visited := 0
	vec.Range(func(index int, v int) bool {
		assert.Equal(t, index, v)
		visited++
		return index < 5
	})
	assert.Equal(t, 6, visited)
}

func TestVector_RemoveBy(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 9))
	assert.Equal(t, 13, vec.Len())
	removed := vec.RemoveBy(2, func(index int, v int) bool {
		return 9 == v
	})
	assert.Equal(t, 2, removed)
	assert.Equal(t, 11, vec.Len())

	removed = vec.RemoveBy(1, func(index int, v int) bool {
		return 9 == v
	})
	assert.Equal(t, 1, removed)
	assert.Equal(t, 10, vec.Len())

	removed = vec.RemoveBy(0, func(index int, v int) bool {
		return v%2 == 0
	})
	assert.Equal(t, 5, removed)
	assert.Equal(t, []int{1, 3, 5, 7, 9}, vec.ToSlice())
}

func TestVector_RemoveAt(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	assert.Equal(t, 10, vec.Len())

	for vec.Len() > 0 {
		require.NoError(t, vec.RemoveAt(0))
	}
	assert.Equal(t, 0, vec.Len())
	assert.ErrorIs(t, vec.RemoveAt(0), ErrIndex)
}

func TestVector_RemoveOne(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(8))
	require.NoError(t, vec.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9))
	assert.Equal(t, 11, vec.Len())
	assert.Equal(t, false, vec.Remove(-1))
	assert.Equal(t, 11, vec.Len())
	assert.Equal(t, true, vec.Remove(9))
	assert.Equal(t, 10, vec.Len())
}

func TestVector_Insert(t *testing.T) {
	vec := newVector[int](t, WithInitialCapacity(2))
	require.NoError(t, vec.Append(1, 3))
	require.NoError(t, vec.Insert(2, 1))
	require.NoError(t, vec.Insert(0, 0))
	require.NoError(t, vec.Insert(4, 4))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, vec.ToSlice())
	assert.ErrorIs(t, vec.Insert(9, 9), ErrIndex)
}

func TestVector_Sort(t *testing.T) {
	vec := newVector[player](t)
	require.NoError(t, vec.Append(
		player{id: 3, score: 10},
		player{id: 1, score: 30},
		player{id: 2, score: 20},
	))

	require.NoError(t, vec.Sort(func(a, b player) int {
		return cmp.Compare(a.id, b.id)
	}))
	assert.Equal(t, []player{{1, 30}, {2, 20}, {3, 10}}, vec.ToSlice())

	require.NoError(t, vec.Sort(func(a, b player) int {
		return cmp.Compare(a.score, b.score)
	}))
	assert.Equal(t, []player{{3, 10}, {2, 20}, {1, 30}}, vec.ToSlice())

	assert.ErrorIs(t, vec.Sort(nil), ErrInvalidArgument)
}

func TestVector_ClearReserveRelease(t *testing.T) {
	vec := newVector[uint16](t, WithInitialCapacity(4))
	require.NoError(t, vec.Append(1, 2, 3))
	require.NoError(t, vec.Reserve(100))
	assert.Equal(t, 100, vec.Cap())

	vec.Clear()
	assert.Equal(t, 0, vec.Len())
	assert.Empty(t, vec.ToSlice())

	require.NoError(t, vec.Release())
	assert.ErrorIs(t, vec.Release(), ErrState)
	assert.ErrorIs(t, vec.Append(1), ErrState)
}
