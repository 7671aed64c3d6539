// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrp

import (
	"context"
	"fmt"

	"github.com/momeni/car-catalog/pkg/adapter/db/postgres"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/model"
	"gorm.io/gorm/clause"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS cars (
    id bigserial PRIMARY KEY,
    name varchar(80) NOT NULL CHECK (length(name) > 0),
    brand varchar(50) NOT NULL CHECK (length(brand) > 0),
    year integer NOT NULL CHECK (year >= 1950),
    fuel_type varchar(16) NOT NULL
        CHECK (fuel_type IN ('Gasoline', 'Diesel', 'Electric', 'Hybrid')),
    horsepower double precision NOT NULL CHECK (horsepower > 0)
)`

const dropTableSQL = `DROP TABLE IF EXISTS cars`

type gCar struct {
	ID         int64 `gorm:"primaryKey;column:id"`
	Name       string
	Brand      string
	Year       int
	FuelType   string `gorm:"column:fuel_type"`
	Horsepower float64
}

func (gc *gCar) TableName() string {
	return "cars"
}

func fromModel(c *model.Car) gCar {
	p := c.ToPrimitives()
	return gCar{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Year:       p.Year,
		FuelType:   p.FuelType,
		Horsepower: p.Horsepower,
	}
}

func (gc *gCar) Model() (*model.Car, error) {
	ft, err := model.ParseFuelType(gc.FuelType)
	if err != nil {
		return nil, fmt.Errorf("car %d: %w", gc.ID, err)
	}
	return model.NewCar(model.CarParams{
		ID:         gc.ID,
		Name:       gc.Name,
		Brand:      gc.Brand,
		Year:       gc.Year,
		FuelType:   ft,
		Horsepower: gc.Horsepower,
	})
}

func models(gcs []gCar) ([]*model.Car, error) {
	cars := make([]*model.Car, 0, len(gcs))
	for i := range gcs {
		c, err := gcs[i].Model()
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, nil
}

func CreateTable[Q postgres.Queryer](ctx context.Context, q Q) error {
	if _, err := q.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("creating cars table: %w", err)
	}
	return nil
}

func DropTable[Q postgres.Queryer](ctx context.Context, q Q) error {
	if _, err := q.Exec(ctx, dropTableSQL); err != nil {
		return fmt.Errorf("dropping cars table: %w", err)
	}
	return nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.Car, error) {
	var gcs []gCar
	if err := q.GORM(ctx).Order("id").Find(&gcs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gcs)
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Car, error) {
	var gcs []gCar
	err := q.GORM(ctx).Where("id=?", id).Limit(1).Find(&gcs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gcs) == 0 {
		return nil, cerr.NotFound(fmt.Errorf("car %d", id))
	}
	return gcs[0].Model()
}

func Insert[Q postgres.Queryer](ctx context.Context, q Q, c *model.Car) (*model.Car, error) {
	gc := fromModel(c)
	gc.ID = 0
	if err := q.GORM(ctx).Create(&gc).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return c.WithID(gc.ID), nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, c *model.Car) (*model.Car, error) {
	gc := fromModel(c)
	var gcs []gCar
	err := q.GORM(ctx).Model(&gcs).Clauses(clause.Returning{}).Select(
		"name", "brand", "year", "fuel_type", "horsepower",
	).Where(
		"id=?", gc.ID,
	).Updates(gc).Error
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if n := len(gcs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("car %d: expected one row, but got %d", gc.ID, n),
		)
	}
	return gcs[0].Model()
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id int64) error {
	n, err := q.Exec(ctx, "DELETE FROM cars WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if n == 0 {
		return cerr.NotFound(fmt.Errorf("car %d", id))
	}
	return nil
}
