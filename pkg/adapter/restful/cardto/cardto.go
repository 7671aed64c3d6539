// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cardto defines the wire representation of a car and its
// mapping to and from the model.Car entity. The same CarDTO is used by
// the HTTP clients, the RESTful server, and the storage backends which
// keep cars as JSON documents.
package cardto

import (
	"fmt"

	"github.com/momeni/car-catalog/pkg/core/model"
)

// CarDTO is the JSON shape of a car. The ID is omitted when it is zero,
// so the same type serves as the creation request body.
type CarDTO struct {
	ID         int64   `json:"id,omitempty"`
	Name       string  `json:"name" binding:"required,max=200"`
	Brand      string  `json:"brand" binding:"required,max=200"`
	Year       int     `json:"year" binding:"required"`
	FuelType   string  `json:"fuelType" binding:"required,oneof=Gasoline Diesel Electric Hybrid"`
	Horsepower float64 `json:"horsepower" binding:"required,gt=0"`
}

// ToDomainCar validates dto and converts it to a model.Car.
// Returned errors wrap the model construction errors.
func ToDomainCar(dto CarDTO) (*model.Car, error) {
	ft, err := model.ParseFuelType(dto.FuelType)
	if err != nil {
		return nil, fmt.Errorf("fuelType %q: %w", dto.FuelType, err)
	}
	return model.NewCar(model.CarParams{
		ID:         dto.ID,
		Name:       dto.Name,
		Brand:      dto.Brand,
		Year:       dto.Year,
		FuelType:   ft,
		Horsepower: dto.Horsepower,
	})
}

// ToCarDTO converts car to its wire representation.
func ToCarDTO(car *model.Car) CarDTO {
	p := car.ToPrimitives()
	return CarDTO{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Year:       p.Year,
		FuelType:   p.FuelType,
		Horsepower: p.Horsepower,
	}
}

// ToDomainCars converts all dtos, failing on the first invalid one.
func ToDomainCars(dtos []CarDTO) ([]*model.Car, error) {
	cars := make([]*model.Car, 0, len(dtos))
	for i, dto := range dtos {
		car, err := ToDomainCar(dto)
		if err != nil {
			return nil, fmt.Errorf("car #%d: %w", i, err)
		}
		cars = append(cars, car)
	}
	return cars, nil
}

// ToCarDTOs converts all cars to their wire representation.
// A nil slice is converted to an empty (non-nil) slice, so it is
// serialized as [] instead of null.
func ToCarDTOs(cars []*model.Car) []CarDTO {
	dtos := make([]CarDTO, 0, len(cars))
	for _, car := range cars {
		dtos = append(dtos, ToCarDTO(car))
	}
	return dtos
}
