// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jsonfile implements the cars repository on top of a JSON
// document like {"cars": [...]}, i.e., the db.json file format of the
// JSON-server tool. The document is loaded once and kept in memory.
// Every mutation rewrites the file, but write failures are only logged,
// so the file is a best-effort and non-durable copy of the catalog.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"github.com/momeni/car-catalog/pkg/adapter/restful/cardto"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
)

// document is the file format. LastID is the largest ID which was ever
// assigned, so IDs of deleted cars are not reused.
type document struct {
	Cars   []cardto.CarDTO `json:"cars"`
	LastID int64           `json:"lastId,omitempty"`
}

// Repo is a cars repository which is backed by a JSON file.
// It is safe to be used concurrently.
type Repo struct {
	path string

	mu     sync.Mutex
	cars   []*model.Car // sorted by ID
	lastID int64
}

// Open loads the path JSON file and returns a Repo which keeps it
// updated. A missing file is treated as an empty catalog and will be
// created by the first mutation. An empty path creates a memory-only
// Repo which never touches the file system.
func Open(path string) (*Repo, error) {
	r := &Repo{path: path}
	if path == "" {
		return r, nil
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	var doc document
	if err = json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	cars, err := cardto.ToDomainCars(doc.Cars)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	for _, c := range cars {
		if !c.HasID() {
			return nil, fmt.Errorf("loading %q: %w", path, model.ErrMissingID)
		}
	}
	slices.SortStableFunc(cars, func(a, b *model.Car) int {
		return compareIDs(a.ID(), b.ID())
	})
	r.cars = slices.CompactFunc(cars, func(a, b *model.Car) bool {
		return a.ID() == b.ID()
	})
	r.lastID = doc.LastID
	if n := len(r.cars); n > 0 {
		r.lastID = max(r.lastID, r.cars[n-1].ID())
	}
	return r, nil
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// List returns all cars ordered by their IDs.
func (r *Repo) List(ctx context.Context) ([]*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.cars), nil
}

// Get returns the car which is identified by id.
func (r *Repo) Get(ctx context.Context, id int64) (*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(id)
	if !ok {
		return nil, cerr.NotFound(fmt.Errorf("car %d", id))
	}
	return r.cars[i], nil
}

// Create stores car with the next ID of the sequence. IDs of deleted
// cars are never assigned again.
func (r *Repo) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	car = car.WithID(r.lastID)
	r.cars = append(r.cars, car)
	r.save(ctx)
	return car, nil
}

// Update replaces the car with the same ID.
func (r *Repo) Update(ctx context.Context, car *model.Car) (*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(car.ID())
	if !ok {
		return nil, cerr.NotFound(fmt.Errorf("car %d", car.ID()))
	}
	r.cars = slices.Clone(r.cars)
	r.cars[i] = car
	r.save(ctx)
	return car, nil
}

// Delete removes the car which is identified by id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(id)
	if !ok {
		return cerr.NotFound(fmt.Errorf("car %d", id))
	}
	r.cars = slices.Delete(slices.Clone(r.cars), i, i+1)
	r.save(ctx)
	return nil
}

// Recreate removes all cars, restarts the IDs sequence, and rewrites
// the file as an empty catalog.
func (r *Repo) Recreate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars, r.lastID = nil, 0
	r.save(ctx)
	return nil
}

func (r *Repo) find(id int64) (int, bool) {
	return slices.BinarySearchFunc(r.cars, id, func(c *model.Car, id int64) int {
		return compareIDs(c.ID(), id)
	})
}

// save writes the catalog into a temporary file and renames it over
// the r.path file. Failures are logged and ignored.
func (r *Repo) save(ctx context.Context) {
	if r.path == "" {
		return
	}
	if err := r.write(); err != nil {
		log.Warn(ctx, "cannot write the catalog file",
			slog.String("path", r.path), log.Err("err", err),
		)
	}
}

func (r *Repo) write() error {
	b, err := json.MarshalIndent(document{
		Cars:   cardto.ToCarDTOs(r.cars),
		LastID: r.lastID,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}
	dir := filepath.Dir(r.path)
	f, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if _, err = f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %q: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", tmp, err)
	}
	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("renaming %q: %w", tmp, err)
	}
	return nil
}
