// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
//
// Entities of this package are immutable. Their fields are unexported
// and the only way to obtain an instance is through a constructor which
// validates all invariants, so an invalid entity may not exist.
// Methods which "change" an entity return a new instance instead.
package model

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// These constants define the bounds of the Car invariants.
const (
	MaxNameLength  = 80   // maximum runes in a trimmed car name
	MaxBrandLength = 50   // maximum runes in a trimmed car brand
	MinYear        = 1950 // oldest acceptable model year
)

// Now returns the current time and is used for computing the newest
// acceptable model year. Tests may replace it in order to pin the year.
var Now = time.Now

// MaxYear returns the newest acceptable model year, that is, the year
// after the current one.
func MaxYear() int {
	return Now().Year() + 1
}

// NoID is the ID of a car which is not assigned by the server yet.
// Positive IDs are assigned by the server, while negative IDs are only
// used locally for provisional (not yet acknowledged) cars.
const NoID int64 = 0

// CarParams contains the raw inputs for creating a Car with NewCar.
// The horsepower may be passed either as a raw number (Horsepower) or
// as an already validated Power value (Power) which takes precedence
// if it is not nil.
type CarParams struct {
	ID         int64
	Name       string
	Brand      string
	Year       int
	FuelType   FuelType
	Horsepower float64
	Power      *Power
}

// Car models a catalog vehicle. A Car is identified by its ID which is
// NoID until the server assigns one. All fields are validated upon
// construction and every With* method returns a new Car, leaving the
// receiver intact, so a *Car may be shared freely between goroutines.
type Car struct {
	id         int64
	name       string
	brand      string
	year       int
	fuelType   FuelType
	horsepower Power
}

// NewCar validates the p parameters and creates a Car instance.
// Name and brand are trimmed before validation. Returned errors wrap
// one of the ErrInvalidName, ErrInvalidBrand, ErrInvalidYear,
// ErrUnknownFuelType, or ErrInvalidMagnitude errors.
func NewCar(p CarParams) (*Car, error) {
	name, err := ensureName(p.Name)
	if err != nil {
		return nil, err
	}
	brand, err := ensureBrand(p.Brand)
	if err != nil {
		return nil, err
	}
	if err = ensureYear(p.Year); err != nil {
		return nil, err
	}
	if err = p.FuelType.Validate(); err != nil {
		return nil, err
	}
	var hp Power
	if p.Power != nil {
		hp, err = ensurePower(*p.Power)
	} else {
		hp, err = NewPower(p.Horsepower)
	}
	if err != nil {
		return nil, err
	}
	return &Car{
		id:         p.ID,
		name:       name,
		brand:      brand,
		year:       p.Year,
		fuelType:   p.FuelType,
		horsepower: hp,
	}, nil
}

func ensureName(v string) (string, error) {
	v = strings.TrimSpace(v)
	switch n := utf8.RuneCountInString(v); {
	case n == 0:
		return "", fmt.Errorf("%w: must not be empty", ErrInvalidName)
	case n > MaxNameLength:
		return "", fmt.Errorf(
			"%w: longer than %d characters", ErrInvalidName, MaxNameLength,
		)
	}
	return v, nil
}

func ensureBrand(v string) (string, error) {
	v = strings.TrimSpace(v)
	switch n := utf8.RuneCountInString(v); {
	case n == 0:
		return "", fmt.Errorf("%w: must not be empty", ErrInvalidBrand)
	case n > MaxBrandLength:
		return "", fmt.Errorf(
			"%w: longer than %d characters", ErrInvalidBrand, MaxBrandLength,
		)
	}
	return v, nil
}

func ensureYear(y int) error {
	if maxYear := MaxYear(); y < MinYear || y > maxYear {
		return fmt.Errorf(
			"%w: %d is out of range (%d..%d)",
			ErrInvalidYear, y, MinYear, maxYear,
		)
	}
	return nil
}

// ensurePower rejects the zero Power which may be declared without
// calling NewPower.
func ensurePower(p Power) (Power, error) {
	if p.IsZero() {
		return Power{}, fmt.Errorf("%w: must be positive", ErrInvalidMagnitude)
	}
	return p, nil
}

// ID returns the car identifier, which is NoID for unsaved cars.
func (c *Car) ID() int64 {
	return c.id
}

// HasID reports whether c carries a server assigned (positive) ID.
func (c *Car) HasID() bool {
	return c.id > 0
}

// IsProvisional reports whether c carries a local temporary ID.
func (c *Car) IsProvisional() bool {
	return c.id < 0
}

// Name returns the trimmed car name.
func (c *Car) Name() string {
	return c.name
}

// Brand returns the trimmed car brand.
func (c *Car) Brand() string {
	return c.brand
}

// Year returns the model year.
func (c *Car) Year() int {
	return c.year
}

// FuelType returns the fuel type.
func (c *Car) FuelType() FuelType {
	return c.fuelType
}

// Horsepower returns the power value object.
func (c *Car) Horsepower() Power {
	return c.horsepower
}

// WithID returns a copy of c which is identified by id.
// Identity is not an invariant-checked field, so no error is possible.
func (c *Car) WithID(id int64) *Car {
	cc := *c
	cc.id = id
	return &cc
}

// Rename returns a copy of c with the given name.
func (c *Car) Rename(name string) (*Car, error) {
	v, err := ensureName(name)
	if err != nil {
		return nil, err
	}
	cc := *c
	cc.name = v
	return &cc, nil
}

// Rebrand returns a copy of c with the given brand.
func (c *Car) Rebrand(brand string) (*Car, error) {
	v, err := ensureBrand(brand)
	if err != nil {
		return nil, err
	}
	cc := *c
	cc.brand = v
	return &cc, nil
}

// WithYear returns a copy of c with the given model year.
func (c *Car) WithYear(year int) (*Car, error) {
	if err := ensureYear(year); err != nil {
		return nil, err
	}
	cc := *c
	cc.year = year
	return &cc, nil
}

// WithPower returns a copy of c with the given power.
func (c *Car) WithPower(p Power) (*Car, error) {
	p, err := ensurePower(p)
	if err != nil {
		return nil, err
	}
	cc := *c
	cc.horsepower = p
	return &cc, nil
}

// WithHorsepower is like WithPower, but wraps a raw magnitude first.
func (c *Car) WithHorsepower(hp float64) (*Car, error) {
	p, err := NewPower(hp)
	if err != nil {
		return nil, err
	}
	return c.WithPower(p)
}

// WithFuelType returns a copy of c with the given fuel type.
func (c *Car) WithFuelType(f FuelType) (*Car, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	cc := *c
	cc.fuelType = f
	return &cc, nil
}

// IsElectric reports whether c is electric or hybrid.
//
// Note that hybrid cars are included. This predicate is kept for the
// existing callers; use IsFullyElectric or IsElectrifiedOrHybrid in
// order to state the intended meaning explicitly.
func (c *Car) IsElectric() bool {
	return c.IsElectrifiedOrHybrid()
}

// IsElectrifiedOrHybrid reports whether c is electric or hybrid.
func (c *Car) IsElectrifiedOrHybrid() bool {
	return c.fuelType == FuelTypeElectric || c.fuelType == FuelTypeHybrid
}

// IsFullyElectric reports whether c is a battery electric car.
func (c *Car) IsFullyElectric() bool {
	return c.fuelType == FuelTypeElectric
}

// Age returns the number of years between the model year and asOf.
// Cars with a model year after asOf have a zero age.
func (c *Car) Age(asOf time.Time) int {
	return max(0, asOf.Year()-c.year)
}

// Equal reports whether c and other have identical fields.
func (c *Car) Equal(other *Car) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Primitives is a flat structural snapshot of a Car.
type Primitives struct {
	ID         int64
	Name       string
	Brand      string
	Year       int
	FuelType   string
	Horsepower float64
}

// ToPrimitives returns a flat snapshot of c. The power is reported as
// a raw number which can be validated again with NewPower.
func (c *Car) ToPrimitives() Primitives {
	return Primitives{
		ID:         c.id,
		Name:       c.name,
		Brand:      c.brand,
		Year:       c.year,
		FuelType:   c.fuelType.String(),
		Horsepower: c.horsepower.Value(),
	}
}

// Params returns the CarParams which recreate c using NewCar.
func (c *Car) Params() CarParams {
	hp := c.horsepower
	return CarParams{
		ID:         c.id,
		Name:       c.name,
		Brand:      c.brand,
		Year:       c.year,
		FuelType:   c.fuelType,
		Horsepower: hp.Value(),
		Power:      &hp,
	}
}

// LogValue implements slog.LogValuer, so a car may be logged as a group.
func (c *Car) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("nil-car")
	}
	return slog.GroupValue(
		slog.Int64("id", c.id),
		slog.String("name", c.name),
		slog.String("brand", c.brand),
		slog.Int("year", c.year),
		slog.String("fuelType", c.fuelType.String()),
		slog.Float64("horsepower", c.horsepower.Value()),
	)
}
