package dynarray

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// GrowthPolicy decides the new capacity of a full array.
type GrowthPolicy int

const (
	// GrowthDoubling doubles the capacity. Default.
	GrowthDoubling GrowthPolicy = iota
	// GrowthPowerOfTwo rounds the capacity up to the next power of two,
	// always strictly larger than the current one. Might waste memory.
	GrowthPowerOfTwo
)

func (p GrowthPolicy) String() string {
	switch p {
	case GrowthDoubling:
		return "doubling"
	case GrowthPowerOfTwo:
		return "power-of-two"
	}
	return "unknown"
}

// ParseGrowthPolicy parses the String form of a policy.
func ParseGrowthPolicy(s string) (GrowthPolicy, error) {
	switch s {
	case "doubling":
		return GrowthDoubling, nil
	case "power-of-two":
		return GrowthPowerOfTwo, nil
	}
	return 0, errors.Wrapf(ErrInvalidArgument, "unknown growth policy %q", s)
}

func (p GrowthPolicy) valid() bool {
	return p == GrowthDoubling || p == GrowthPowerOfTwo
}

// next returns the capacity following capacity, or false on overflow.
func (p GrowthPolicy) next(capacity int) (int, bool) {
	if capacity <= 0 {
		return 0, false
	}

	switch p {
	case GrowthPowerOfTwo:
		n := nextPowerOfTwo(uint(capacity))
		if n == uint(capacity) {
			n = nextPowerOfTwo(uint(capacity) + 1)
		}
		if n == 0 || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		if capacity > math.MaxInt/2 {
			return 0, false
		}
		return capacity * 2, true
	}
}

// nextPowerOfTwo returns the smallest power of two >= v, 0 if it does not fit in uint.
func nextPowerOfTwo(v uint) uint {
	if v <= 1 {
		return 1
	}
	n := bits.Len(v - 1)
	if n >= bits.UintSize {
		return 0
	}
	return 1 << n
}

// mulSize returns a*b, or false if either is negative or the product overflows int.
func mulSize(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}
