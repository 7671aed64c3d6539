// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the
// catalog browsing and editing use cases:
//  1. Fetching all cars,
//  2. Getting one car,
//  3. Creating, updating, and deleting a car.
//
// Each use case is a single call on the cars repository. Errors keep
// their category (see the cerr package) and are wrapped with the name
// of the failed use case.
package carsuc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/momeni/car-catalog/pkg/core/repo"
)

// UseCase represents a cars use case. It holds the cars repository,
// which may be backed by any transport, and the use case options.
type UseCase struct {
	carsrp repo.Cars

	callLogging bool
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(c repo.Cars, opts ...Option) (*UseCase, error) {
	if c == nil {
		return nil, fmt.Errorf("cars repository is nil")
	}
	uc := &UseCase{carsrp: c}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// FetchCars use case lists all catalog cars.
func (cars *UseCase) FetchCars(ctx context.Context) (cc []*model.Car, err error) {
	defer cars.trace(ctx, "FetchCars", time.Now(), &err)
	cc, err = cars.carsrp.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchCars: %w", err)
	}
	return cc, nil
}

// GetCar use case finds the car which is identified by id.
func (cars *UseCase) GetCar(ctx context.Context, id int64) (car *model.Car, err error) {
	defer cars.trace(ctx, "GetCar", time.Now(), &err, log.CarID(id))
	car, err = cars.carsrp.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetCar(%d): %w", id, err)
	}
	return car, nil
}

// CreateCar use case stores the car as a new catalog entry and returns
// it with its assigned ID. Any ID of the given car is ignored.
func (cars *UseCase) CreateCar(ctx context.Context, car *model.Car) (created *model.Car, err error) {
	defer cars.trace(ctx, "CreateCar", time.Now(), &err, log.Valuer("car", car))
	created, err = cars.carsrp.Create(ctx, car.WithID(model.NoID))
	if err != nil {
		return nil, fmt.Errorf("CreateCar: %w", err)
	}
	return created, nil
}

// UpdateCar use case replaces the car with the same ID, returning
// the stored car as reported by the repository.
func (cars *UseCase) UpdateCar(ctx context.Context, car *model.Car) (updated *model.Car, err error) {
	defer cars.trace(ctx, "UpdateCar", time.Now(), &err, log.Valuer("car", car))
	if !car.HasID() {
		return nil, fmt.Errorf("UpdateCar: %w", model.ErrMissingID)
	}
	updated, err = cars.carsrp.Update(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("UpdateCar(%d): %w", car.ID(), err)
	}
	return updated, nil
}

// DeleteCar use case removes the car which is identified by id.
func (cars *UseCase) DeleteCar(ctx context.Context, id int64) (err error) {
	defer cars.trace(ctx, "DeleteCar", time.Now(), &err, log.CarID(id))
	if err = cars.carsrp.Delete(ctx, id); err != nil {
		return fmt.Errorf("DeleteCar(%d): %w", id, err)
	}
	return nil
}

func (cars *UseCase) trace(
	ctx context.Context,
	name string,
	start time.Time,
	err *error,
	attrs ...slog.Attr,
) {
	if !cars.callLogging {
		return
	}
	attrs = append(attrs,
		slog.String("usecase", name),
		slog.Duration("elapsed", time.Since(start)),
	)
	if *err != nil {
		attrs = append(attrs, log.Err("err", *err))
		log.Debug(ctx, "use case failed", attrs...)
		return
	}
	log.Debug(ctx, "use case done", attrs...)
}
