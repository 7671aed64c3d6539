// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package store

import (
	"errors"

	"github.com/momeni/car-catalog/pkg/core/model"
)

// Option is a functional option for the Store.
type Option func(s *Store) error

// WithCars option fills the collection of a new Store. Entries with
// a repeated ID replace the earlier ones.
func WithCars(cars []*model.Car) Option {
	return func(s *Store) error {
		if len(s.st.Cars) != 0 {
			return errors.New("cars are already configured")
		}
		for _, c := range cars {
			if c == nil {
				return ErrNilCar
			}
		}
		s.st.Cars = dedupe(cars)
		return nil
	}
}

// WithSubscriber option registers fn as if Subscribe was called
// right after the Store creation.
func WithSubscriber(fn func(State)) Option {
	return func(s *Store) error {
		if fn == nil {
			return errors.New("nil subscriber")
		}
		s.Subscribe(fn)
		return nil
	}
}
