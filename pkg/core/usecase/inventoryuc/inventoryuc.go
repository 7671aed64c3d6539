// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package inventoryuc contains the inventory UseCase which serves the
// catalog service side of the cars resource. It validates the incoming
// car parameters, so the storage backends only see valid cars, and
// reports invalid inputs as cerr.BadRequest errors.
package inventoryuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/momeni/car-catalog/pkg/core/repo"
)

// ErrIDMismatch indicates that a car body carries an ID which differs
// from the addressed car ID.
var ErrIDMismatch = errors.New("car id does not match the addressed id")

// UseCase represents the inventory use case. It holds a storage
// backend which implements the cars repository.
type UseCase struct {
	carsrp repo.Cars
}

// New instantiates an inventory use case for the c cars repository.
func New(c repo.Cars) (*UseCase, error) {
	if c == nil {
		return nil, errors.New("cars repository is nil")
	}
	return &UseCase{carsrp: c}, nil
}

// List returns all cars, ordered by their IDs.
func (inv *UseCase) List(ctx context.Context) ([]*model.Car, error) {
	cars, err := inv.carsrp.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cars: %w", err)
	}
	return cars, nil
}

// Get returns the car which is identified by id.
func (inv *UseCase) Get(ctx context.Context, id int64) (*model.Car, error) {
	if id <= 0 {
		return nil, cerr.NotFound(fmt.Errorf("car %d", id))
	}
	car, err := inv.carsrp.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting car %d: %w", id, err)
	}
	return car, nil
}

// Create validates p and stores it as a new car. Any ID in p is
// ignored since IDs are assigned by the storage backend.
func (inv *UseCase) Create(ctx context.Context, p model.CarParams) (*model.Car, error) {
	p.ID = model.NoID
	car, err := model.NewCar(p)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	car, err = inv.carsrp.Create(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("creating car: %w", err)
	}
	log.Info(ctx, "car is created", log.Valuer("car", car))
	return car, nil
}

// Replace validates p and replaces all fields of the car which is
// identified by id. The p.ID may be zero, otherwise it must be equal
// to id.
func (inv *UseCase) Replace(ctx context.Context, id int64, p model.CarParams) (*model.Car, error) {
	if p.ID != model.NoID && p.ID != id {
		return nil, cerr.BadRequest(fmt.Errorf(
			"%w: %d != %d", ErrIDMismatch, p.ID, id,
		))
	}
	if id <= 0 {
		return nil, cerr.NotFound(fmt.Errorf("car %d", id))
	}
	p.ID = id
	car, err := model.NewCar(p)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	car, err = inv.carsrp.Update(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("replacing car %d: %w", id, err)
	}
	log.Info(ctx, "car is replaced", log.Valuer("car", car))
	return car, nil
}

// Delete removes the car which is identified by id.
func (inv *UseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return cerr.NotFound(fmt.Errorf("car %d", id))
	}
	if err := inv.carsrp.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting car %d: %w", id, err)
	}
	log.Info(ctx, "car is deleted", log.CarID(id))
	return nil
}

// Seed creates all cars of ps, but only if the catalog is empty.
// It returns the number of created cars.
func (inv *UseCase) Seed(ctx context.Context, ps []model.CarParams) (int, error) {
	cars, err := inv.carsrp.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing cars: %w", err)
	}
	if len(cars) > 0 {
		log.Info(ctx, "catalog is not empty, skipping seed",
			slog.Int("cars", len(cars)),
		)
		return 0, nil
	}
	for i, p := range ps {
		if _, err = inv.Create(ctx, p); err != nil {
			return i, fmt.Errorf("seeding car #%d: %w", i, err)
		}
	}
	return len(ps), nil
}
