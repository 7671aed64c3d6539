// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// These errors indicate that a value object or entity could not be
// constructed because one of its invariants was violated. They are
// always caller-correctable and are never retried internally.
//
// Similar to ErrUnknownFuelType, each error only describes the violated
// constraint category. Constructors wrap them (using %w) in order to
// add the specific bound which was violated, while the caller which is
// already aware of its own arguments, should wrap the returned error
// with its function name (or another context) before returning it.
// Callers may match them with errors.Is.
var (
	// ErrInvalidMagnitude indicates a non-positive (or NaN/Inf) power.
	ErrInvalidMagnitude = errors.New("invalid magnitude")

	// ErrInvalidName indicates an empty or too long car name.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidBrand indicates an empty or too long car brand.
	ErrInvalidBrand = errors.New("invalid brand")

	// ErrInvalidYear indicates a car year out of the acceptable range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrMissingID indicates that an operation which requires a server
	// assigned car ID was given a car without one.
	ErrMissingID = errors.New("missing car id")
)

// IsInvariantViolation reports whether err (or any error in its chain)
// is one of the construction errors of this package.
func IsInvariantViolation(err error) bool {
	for _, target := range []error{
		ErrInvalidMagnitude,
		ErrInvalidName,
		ErrInvalidBrand,
		ErrInvalidYear,
		ErrUnknownFuelType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
