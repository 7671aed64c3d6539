// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package store

import (
	"context"
	"fmt"

	"github.com/momeni/car-catalog/pkg/core/model"
)

// snapshot keeps the parts of a State which are restored by rollbacks.
type snapshot struct {
	cars     []*model.Car
	selected *model.Car
}

func (s *Store) begin(st *State) {
	s.inFlight++
	st.Loading = true
}

func (s *Store) end(st *State, err error) {
	if s.inFlight > 0 {
		s.inFlight--
	}
	st.Loading = s.inFlight > 0
	if err != nil {
		st.Err = err
	}
}

// Load fetches all cars and replaces the whole collection with them.
// The selection is kept if the selected car is still present.
func (s *Store) Load(ctx context.Context) error {
	s.mutate(s.begin)
	cars, err := s.uc.FetchCars(ctx)
	s.mutate(func(st *State) {
		s.end(st, err)
		if err == nil {
			st.Cars = dedupe(cars)
		}
	})
	return err
}

// Create validates p and appends the resulting car to the collection
// with a temporary negative ID before asking the use cases to create
// it. Once confirmed, the temporary entry is replaced by the created
// car. Otherwise, the temporary entry is removed and the error is
// returned. Invalid parameters fail before any state change.
func (s *Store) Create(ctx context.Context, p model.CarParams) (*model.Car, error) {
	p.ID = model.NoID
	car, err := model.NewCar(p)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	var tempID int64
	s.mutate(func(st *State) {
		s.lastTemp--
		tempID = s.lastTemp
		st.Cars = append(st.Cars[:len(st.Cars):len(st.Cars)], car.WithID(tempID))
		s.begin(st)
	})
	created, err := s.uc.CreateCar(ctx, car)
	s.mutate(func(st *State) {
		s.end(st, err)
		if err != nil {
			st.Cars = without(st.Cars, tempID)
			return
		}
		st.Cars = substitute(st.Cars, tempID, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Save replaces the car with the same ID (and the selection if it was
// pointing to that car) before asking the use cases to update it.
// Once confirmed, the entry is replaced by the stored car. Otherwise,
// the collection and selection are restored as they were before
// the call and the error is returned.
func (s *Store) Save(ctx context.Context, car *model.Car) (*model.Car, error) {
	if car == nil {
		return nil, fmt.Errorf("Save: %w", ErrNilCar)
	}
	if !car.HasID() {
		return nil, fmt.Errorf("Save: %w", model.ErrMissingID)
	}
	var snap snapshot
	s.mutate(func(st *State) {
		snap = snapshot{cars: st.Cars, selected: st.Selected}
		st.Cars = replace(st.Cars, car)
		s.begin(st)
	})
	updated, err := s.uc.UpdateCar(ctx, car)
	s.mutate(func(st *State) {
		s.end(st, err)
		if err != nil {
			st.Cars, st.Selected = snap.cars, snap.selected
			return
		}
		st.Cars = replace(st.Cars, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove drops the car which is identified by id (and clears the
// selection if it was pointing to that car) before asking the use
// cases to delete it. On failure, the collection and selection are
// restored as they were before the call and the error is returned.
func (s *Store) Remove(ctx context.Context, id int64) error {
	var snap snapshot
	s.mutate(func(st *State) {
		snap = snapshot{cars: st.Cars, selected: st.Selected}
		st.Cars = without(st.Cars, id)
		s.begin(st)
	})
	err := s.uc.DeleteCar(ctx, id)
	s.mutate(func(st *State) {
		s.end(st, err)
		if err != nil {
			st.Cars, st.Selected = snap.cars, snap.selected
		}
	})
	return err
}
