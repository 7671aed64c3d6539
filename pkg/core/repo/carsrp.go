// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which are required
// by the use cases. These interfaces are implemented by the adapter
// layer packages, either by talking to a remote catalog service over
// HTTP or by storing cars in a local backend.
package repo

import (
	"context"

	"github.com/momeni/car-catalog/pkg/core/model"
)

// Cars is the car catalog repository.
//
// Implementations report a missing car with an error wrapping
// cerr.NotFound, rejected inputs with cerr.BadRequest, and failures of
// the remote side or the backing store with cerr.Transport (or a plain
// error for local backends).
type Cars interface {
	// List returns all cars in the catalog.
	List(ctx context.Context) ([]*model.Car, error)

	// Get returns the car which is identified by id.
	Get(ctx context.Context, id int64) (*model.Car, error)

	// Create stores a new car. The car ID is ignored and the returned
	// car carries the assigned ID.
	Create(ctx context.Context, car *model.Car) (*model.Car, error)

	// Update replaces all fields of the car with the same ID.
	Update(ctx context.Context, car *model.Car) (*model.Car, error)

	// Delete removes the car which is identified by id.
	Delete(ctx context.Context, id int64) error
}
