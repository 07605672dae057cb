package dynarray

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Sort sorts the elements in place with quicksort (Hoare partitioning around
// the middle element). compare returns a negative number when a < b, zero when
// equal and a positive number when a > b, and must define a total order.
// The sort is not stable.
//
// Scratch space is allocated per call, Sort on distinct arrays can run
// concurrently and elements may be of any size.
func (a *Array) Sort(compare func(a, b []byte) int) error {
	if !a.initialized() {
		return errors.Wrap(ErrState, "sort: array not initialized")
	}
	if compare == nil {
		return errors.Wrap(ErrInvalidArgument, "sort: nil compare")
	}
	if a.length < 2 {
		return nil
	}

	s := sorter{
		data:    a.buf[:a.length*a.itemSize],
		size:    a.itemSize,
		compare: compare,
		pivot:   make([]byte, a.itemSize),
		tmp:     make([]byte, a.itemSize),
	}
	s.sort(a.length)
	return nil
}

// span is an inclusive range of element indexes.
type span struct {
	lo, hi int
}

type sorter struct {
	data    []byte
	size    int
	compare func(a, b []byte) int
	pivot   []byte
	tmp     []byte

	maxStack int
}

func (s *sorter) at(i int) []byte {
	off := i * s.size
	return s.data[off : off+s.size : off+s.size]
}

func (s *sorter) swap(i, j int) {
	copy(s.tmp, s.at(i))
	copy(s.at(i), s.at(j))
	copy(s.at(j), s.tmp)
}

// partition splits [lo, hi] into [lo, p] and [p+1, hi] with every element of
// the left part <= every element of the right part, and returns p.
// lo <= p < hi, so both parts are non-empty.
func (s *sorter) partition(lo, hi int) int {
	// 拷贝一份 pivot，交换过程中原位置的内容会变化
	copy(s.pivot, s.at(lo+(hi-lo)/2))

	i, j := lo-1, hi+1
	for {
		for {
			i++
			if s.compare(s.at(i), s.pivot) >= 0 {
				break
			}
		}
		for {
			j--
			if s.compare(s.at(j), s.pivot) <= 0 {
				break
			}
		}
		if i >= j {
			return j
		}
		s.swap(i, j)
	}
}

// sort keeps pending ranges on an explicit stack. The larger half is pushed
// and the smaller one handled next, so the stack never exceeds log2(n) entries.
func (s *sorter) sort(n int) {
	stack := make([]span, 0, bits.Len(uint(n)))
	lo, hi := 0, n-1
	for {
		for lo < hi {
			p := s.partition(lo, hi)
			if p-lo < hi-p {
				stack = append(stack, span{p + 1, hi})
				hi = p
			} else {
				stack = append(stack, span{lo, p})
				lo = p + 1
			}
			s.maxStack = max(s.maxStack, len(stack))
		}

		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		lo, hi = top.lo, top.hi
	}
}
