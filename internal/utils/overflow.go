// Package utils provides utility functions for the NBT library.
package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two uint64 values would overflow.
// Returns an error if overflow would occur.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}

	return nil
}

// SafeMultiply multiplies two uint64 values and returns the result if no
// overflow occurs. Returns 0 and an error if overflow would occur.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// ElementSpan calculates the byte span of count elements of the given width.
// The parser uses it to bound list and array payloads before slicing; the
// count comes from untrusted input, so the multiplication is checked.
func ElementSpan(count, elemSize uint64) (uint64, error) {
	span, err := SafeMultiply(count, elemSize)
	if err != nil {
		return 0, fmt.Errorf("payload span overflow: %w", err)
	}
	return span, nil
}
