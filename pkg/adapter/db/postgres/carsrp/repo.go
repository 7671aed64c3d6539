// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp implements the cars repository on a PostgreSQL
// database. Each query is implemented as a generic function which may
// run on a connection or in a transaction, while the Repo type runs
// them on connections of a pool. Updates and deletes run in their own
// transactions.
package carsrp

import (
	"context"

	"github.com/momeni/car-catalog/pkg/adapter/db/postgres"
	"github.com/momeni/car-catalog/pkg/core/model"
)

// Repo is the PostgreSQL cars repository.
type Repo struct {
	pool *postgres.Pool
}

// New instantiates a Repo which acquires its connections from pool.
func New(pool *postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

// Init creates the cars table if it does not exist.
func (cars *Repo) Init(ctx context.Context) error {
	return cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		return CreateTable(ctx, c)
	})
}

// Recreate drops the cars table (if any) and creates an empty one.
func (cars *Repo) Recreate(ctx context.Context) error {
	return cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx *postgres.Tx) error {
			if err := DropTable(ctx, tx); err != nil {
				return err
			}
			return CreateTable(ctx, tx)
		})
	})
}

func (cars *Repo) List(ctx context.Context) (cc []*model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		cc, err = List(ctx, c)
		return err
	})
	return
}

func (cars *Repo) Get(ctx context.Context, id int64) (car *model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		car, err = Get(ctx, c, id)
		return err
	})
	if err != nil {
		car = nil
	}
	return
}

func (cars *Repo) Create(ctx context.Context, car *model.Car) (created *model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		created, err = Insert(ctx, c, car)
		return err
	})
	if err != nil {
		created = nil
	}
	return
}

func (cars *Repo) Update(ctx context.Context, car *model.Car) (updated *model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx *postgres.Tx) error {
			updated, err = Update(ctx, tx, car)
			return err
		})
	})
	if err != nil {
		updated = nil
	}
	return
}

func (cars *Repo) Delete(ctx context.Context, id int64) error {
	return cars.pool.Conn(ctx, func(ctx context.Context, c *postgres.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx *postgres.Tx) error {
			return Delete(ctx, tx, id)
		})
	})
}
