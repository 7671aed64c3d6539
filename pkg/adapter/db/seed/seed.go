// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package seed provides the development catalog contents.
package seed

import "github.com/momeni/car-catalog/pkg/core/model"

// Cars returns the cars which are used in order to fill an empty
// development catalog.
func Cars() []model.CarParams {
	return []model.CarParams{
		{Name: "Golf GTI", Brand: "Volkswagen", Year: 2023, FuelType: model.FuelTypeGasoline, Horsepower: 245},
		{Name: "Taycan Turbo S", Brand: "Porsche", Year: 2024, FuelType: model.FuelTypeElectric, Horsepower: 750},
		{Name: "A3 Sportback", Brand: "Audi", Year: 2022, FuelType: model.FuelTypeDiesel, Horsepower: 150},
		{Name: "Ibiza FR", Brand: "SEAT", Year: 2021, FuelType: model.FuelTypeGasoline, Horsepower: 110},
		{Name: "Enyaq iV", Brand: "Škoda", Year: 2023, FuelType: model.FuelTypeElectric, Horsepower: 204},
		{Name: "Formentor VZ", Brand: "Cupra", Year: 2024, FuelType: model.FuelTypeHybrid, Horsepower: 310},
	}
}
