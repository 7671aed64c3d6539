// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// cvToKW is the number of kilowatts in one metric horsepower (CV).
const cvToKW = 0.7355

// Power is a value object representing the horsepower of a car,
// measured in metric horsepower (CV). It has no identity and two Power
// instances are equal if and only if their magnitudes are equal.
// The zero value is not a valid Power; use NewPower in order to obtain
// an instance which is known to be strictly positive.
type Power struct {
	value float64
}

// NewPower validates the v magnitude and wraps it as a Power instance.
// Zero, negative, NaN, and infinite magnitudes are rejected with an
// error wrapping ErrInvalidMagnitude.
func NewPower(v float64) (Power, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Power{}, fmt.Errorf("%w: not a finite number", ErrInvalidMagnitude)
	}
	if v <= 0 {
		return Power{}, fmt.Errorf("%w: must be positive", ErrInvalidMagnitude)
	}
	return Power{value: v}, nil
}

// MustPower is like NewPower, but panics for invalid magnitudes.
// It is intended for static initialization and tests.
func MustPower(v float64) Power {
	p, err := NewPower(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Value returns the raw magnitude in CV.
func (p Power) Value() float64 {
	return p.value
}

// Kilowatts converts the p power to kilowatts, rounded to two decimals.
func (p Power) Kilowatts() float64 {
	return math.Round(p.value*cvToKW*100) / 100
}

// Equal reports whether p and other have the same magnitude.
func (p Power) Equal(other Power) bool {
	return p.value == other.value
}

// IsZero reports whether p is the (invalid) zero value.
func (p Power) IsZero() bool {
	return p.value == 0
}

// String returns the magnitude followed by its CV unit, e.g., "150 CV".
func (p Power) String() string {
	return strconv.FormatFloat(p.value, 'f', -1, 64) + " CV"
}

// LogValue implements slog.LogValuer.
func (p Power) LogValue() slog.Value {
	return slog.Float64Value(p.value)
}
