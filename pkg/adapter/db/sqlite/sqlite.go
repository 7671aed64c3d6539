// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlite implements the cars repository on an embedded SQLite
// database file. The schema is kept as goose migrations which are
// embedded in the binary and applied by Open, so a fresh file is ready
// to be used right away.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/momeni/car-catalog/pkg/core/repo"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ repo.Cars = (*Repo)(nil)

// Repo is a cars repository which is backed by SQLite.
type Repo struct {
	db *sqlx.DB
}

// dbCar represents a car as stored in the cars table.
type dbCar struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	Brand      string  `db:"brand"`
	Year       int     `db:"year"`
	FuelType   string  `db:"fuel_type"`
	Horsepower float64 `db:"horsepower"`
}

func toDomainCar(c *dbCar) (*model.Car, error) {
	ft, err := model.ParseFuelType(c.FuelType)
	if err != nil {
		return nil, fmt.Errorf("car %d fuel type %q: %w", c.ID, c.FuelType, err)
	}
	return model.NewCar(model.CarParams{
		ID:         c.ID,
		Name:       c.Name,
		Brand:      c.Brand,
		Year:       c.Year,
		FuelType:   ft,
		Horsepower: c.Horsepower,
	})
}

// Open opens (or creates) the SQLite database at path and applies all
// pending migrations. The ":memory:" path keeps the database in memory.
// Only one connection is used, so writers never wait for each other.
func Open(ctx context.Context, path string) (*Repo, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	r := &Repo{db: db}
	if err = r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func setupGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting migrations dialect: %w", err)
	}
	return nil
}

func (r *Repo) migrate(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, r.db.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Recreate rolls back all migrations, dropping the cars, and applies
// them again, so the database is left empty.
func (r *Repo) Recreate(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.ResetContext(ctx, r.db.DB, "migrations"); err != nil {
		return fmt.Errorf("resetting migrations: %w", err)
	}
	return r.migrate(ctx)
}

// Close closes the database.
func (r *Repo) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("closing sqlite db: %w", err)
	}
	return nil
}

// List returns all cars ordered by their IDs.
func (r *Repo) List(ctx context.Context) ([]*model.Car, error) {
	var rows []*dbCar
	query := `SELECT id, name, brand, year, fuel_type, horsepower
		FROM cars ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("selecting cars: %w", err)
	}
	cars := make([]*model.Car, 0, len(rows))
	for _, row := range rows {
		car, err := toDomainCar(row)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, nil
}

// Get returns the car which is identified by id.
func (r *Repo) Get(ctx context.Context, id int64) (*model.Car, error) {
	row := &dbCar{}
	query := `SELECT id, name, brand, year, fuel_type, horsepower
		FROM cars WHERE id = ?`
	err := r.db.GetContext(ctx, row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cerr.NotFound(fmt.Errorf("car %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("selecting car %d: %w", id, err)
	}
	return toDomainCar(row)
}

// Create inserts car and returns it with its assigned ID.
func (r *Repo) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	p := car.ToPrimitives()
	query := `INSERT INTO cars(name, brand, year, fuel_type, horsepower)
		VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(
		ctx, query, p.Name, p.Brand, p.Year, p.FuelType, p.Horsepower,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting car: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted car id: %w", err)
	}
	return car.WithID(id), nil
}

// Update replaces all fields of the car with the same ID.
func (r *Repo) Update(ctx context.Context, car *model.Car) (*model.Car, error) {
	p := car.ToPrimitives()
	query := `UPDATE cars
		SET name = ?, brand = ?, year = ?, fuel_type = ?, horsepower = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(
		ctx, query, p.Name, p.Brand, p.Year, p.FuelType, p.Horsepower, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating car %d: %w", p.ID, err)
	}
	if err = expectOneRow(result, p.ID); err != nil {
		return nil, err
	}
	return car, nil
}

// Delete removes the car which is identified by id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting car %d: %w", id, err)
	}
	return expectOneRow(result, id)
}

func expectOneRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for car %d: %w", id, err)
	}
	if n == 0 {
		return cerr.NotFound(fmt.Errorf("car %d", id))
	}
	return nil
}
