// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// FuelType specifies the fuel type enum of a car. Although this enum
// is numeric, it is (de)serialized as a capitalized string on the wire.
type FuelType int

// Valid values for the FuelType enum.
const (
	FuelTypeInvalid FuelType = iota // zero value is invalid

	FuelTypeGasoline
	FuelTypeDiesel
	FuelTypeElectric
	FuelTypeHybrid
)

// ErrUnknownFuelType indicates that a given string may not be parsed
// as a valid/known fuel type. The invalid string itself is not included
// because the caller of ParseFuelType already knows about it.
var ErrUnknownFuelType = errors.New("unknown fuel type")

// FuelTypeError indicates an invalid numeric fuel type value.
type FuelTypeError int

// Error implements the error interface, returning a string
// representation of the FuelTypeError.
func (e FuelTypeError) Error() string {
	return fmt.Sprintf("invalid fuel type: %d", int(e))
}

// Unwrap allows FuelTypeError to be matched with ErrUnknownFuelType.
func (e FuelTypeError) Unwrap() error {
	return ErrUnknownFuelType
}

// FuelTypes lists all valid fuel types in their presentation order.
func FuelTypes() []FuelType {
	return []FuelType{
		FuelTypeGasoline, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid,
	}
}

// Validate returns nil if FuelType value is valid. For invalid
// values, an instance of the FuelTypeError will be returned.
func (f FuelType) Validate() error {
	switch f {
	case FuelTypeGasoline, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid:
		return nil
	default:
		return FuelTypeError(f)
	}
}

// String converts the FuelType enum to its wire representation.
// Invalid fuel type causes a panic.
func (f FuelType) String() string {
	switch f {
	case FuelTypeGasoline:
		return "Gasoline"
	case FuelTypeDiesel:
		return "Diesel"
	case FuelTypeElectric:
		return "Electric"
	case FuelTypeHybrid:
		return "Hybrid"
	default:
		panic(FuelTypeError(f))
	}
}

// ParseFuelType parses the given string and returns a FuelType.
// Only the exact capitalized names are accepted. For other strings,
// FuelTypeInvalid and ErrUnknownFuelType will be returned.
func ParseFuelType(s string) (FuelType, error) {
	switch s {
	case "Gasoline":
		return FuelTypeGasoline, nil
	case "Diesel":
		return FuelTypeDiesel, nil
	case "Electric":
		return FuelTypeElectric, nil
	case "Hybrid":
		return FuelTypeHybrid, nil
	default:
		return FuelTypeInvalid, ErrUnknownFuelType
	}
}
