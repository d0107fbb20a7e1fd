// Package `safemath` provides integer arithmetic that reports overflow instead of wrapping.
package safemath

import (
	"errors"
	"math"
)

// ErrOverflow is returned whenever a result does not fit in the target type.
var ErrOverflow = errors.New("arithmetic overflow")

// Add32 returns a+b, or ErrOverflow if the sum does not fit in an int32.
func Add32(a, b int32) (int32, error) {
	return ToInt32(int64(a) + int64(b))
}

// Sub32 returns a-b, or ErrOverflow if the difference does not fit in an int32.
func Sub32(a, b int32) (int32, error) {
	return ToInt32(int64(a) - int64(b))
}

// Mul32 returns a*b, or ErrOverflow if the product does not fit in an int32.
func Mul32(a, b int32) (int32, error) {
	return ToInt32(int64(a) * int64(b))
}

// Neg32 returns -a. Negating math.MinInt32 overflows.
func Neg32(a int32) (int32, error) {
	if a == math.MinInt32 {
		return 0, ErrOverflow
	}
	return -a, nil
}

// Add64 returns a+b, or ErrOverflow if the sum does not fit in an int64.
func Add64(a, b int64) (int64, error) {
	sum := a + b
	// Overflow only happens when both operands share a sign the result lacks.
	if (a^sum)&(b^sum) < 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Mul64 returns a*b, or ErrOverflow if the product does not fit in an int64.
func Mul64(a, b int64) (int64, error) {
	switch b {
	case 0:
		return 0, nil
	case 1:
		return a, nil
	case -1:
		if a == math.MinInt64 {
			return 0, ErrOverflow
		}
		return -a, nil
	}
	product := a * b
	if product/b != a {
		return 0, ErrOverflow
	}
	return product, nil
}

// ToInt32 narrows v, or returns ErrOverflow if it is out of range.
func ToInt32(v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(v), nil
}
