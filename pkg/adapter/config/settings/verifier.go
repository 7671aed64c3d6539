// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError indicates that a Value was out of its acceptable
// range, either less than its minimum valid value or greater than its
// maximum valid value.
type OutOfRangeError[T cmp.Ordered] struct {
	Value       T    // The actual out-of-range value
	Min, Max    T    // The inclusive acceptable range
	LessThanMin bool // true if and only if min boundary is violated
}

// Error implements error interface and returns a string reporting that
// minimum or maximum boundary value was not respected.
func (e *OutOfRangeError[T]) Error() string {
	if e.LessThanMin {
		return fmt.Sprintf("%v is less than min (%v)", e.Value, e.Min)
	}
	return fmt.Sprintf("%v is greater than max (%v)", e.Value, e.Max)
}

// VerifyRange verifies the given value ensuring that it is either nil
// or is within the inclusive [minb, maxb] range. For out of range
// values, an *OutOfRangeError is returned and value is left intact.
func VerifyRange[T cmp.Ordered](value *T, minb, maxb T) error {
	switch {
	case value == nil:
		return nil
	case *value < minb:
		return &OutOfRangeError[T]{
			Value: *value, Min: minb, Max: maxb, LessThanMin: true,
		}
	case *value > maxb:
		return &OutOfRangeError[T]{Value: *value, Min: minb, Max: maxb}
	}
	return nil
}
