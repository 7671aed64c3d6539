// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package store

import (
	"fmt"

	"github.com/momeni/car-catalog/pkg/core/model"
)

// SetCars replaces the whole collection.
func (s *Store) SetCars(cars []*model.Car) {
	s.mutate(func(st *State) {
		st.Cars = dedupe(cars)
	})
}

// AddCar appends car to the collection, or replaces the entry which
// has the same ID. A nil car is ignored.
func (s *Store) AddCar(car *model.Car) {
	if car == nil {
		return
	}
	s.mutate(func(st *State) {
		st.Cars = upsert(st.Cars, car)
	})
}

// UpdateCar replaces the entry with the same ID as car and clears the
// selection. Unknown IDs and a nil car are ignored.
func (s *Store) UpdateCar(car *model.Car) {
	if car == nil {
		return
	}
	s.mutate(func(st *State) {
		st.Cars = replace(st.Cars, car)
		st.Selected = nil
	})
}

// DeleteCar removes the car which is identified by id, clearing the
// selection if it was pointing to that car.
func (s *Store) DeleteCar(id int64) {
	s.mutate(func(st *State) {
		st.Cars = without(st.Cars, id)
	})
}

// SelectCar selects the car which is identified by id. It fails with
// ErrUnknownCar if there is no such car in the collection.
func (s *Store) SelectCar(id int64) (err error) {
	s.mutate(func(st *State) {
		i := indexOf(st.Cars, id)
		if i < 0 {
			err = fmt.Errorf("SelectCar(%d): %w", id, ErrUnknownCar)
			return
		}
		st.Selected = st.Cars[i]
	})
	return err
}

// ClearSelection unselects the selected car, if any.
func (s *Store) ClearSelection() {
	s.mutate(func(st *State) {
		st.Selected = nil
	})
}

// SetLoading overrides the loading flag. The flag is recomputed when
// the next action starts or finishes.
func (s *Store) SetLoading(v bool) {
	s.mutate(func(st *State) {
		st.Loading = v
	})
}

// SetError records err as the last error. Passing nil clears it.
func (s *Store) SetError(err error) {
	s.mutate(func(st *State) {
		st.Err = err
	})
}

// OpenForm marks the car editing form as open.
func (s *Store) OpenForm() {
	s.mutate(func(st *State) {
		st.FormOpen = true
	})
}

// CloseForm marks the car editing form as closed and clears the
// selection.
func (s *Store) CloseForm() {
	s.mutate(func(st *State) {
		st.FormOpen = false
		st.Selected = nil
	})
}

// ShowConfirmDialog asks message from the user. The onConfirm or
// onCancel callback is called by ResolveConfirm. A nil callback is
// replaced by a no-op function.
func (s *Store) ShowConfirmDialog(message string, onConfirm, onCancel func()) {
	if onConfirm == nil {
		onConfirm = func() {}
	}
	if onCancel == nil {
		onCancel = func() {}
	}
	s.mutate(func(st *State) {
		st.Confirm = ConfirmDialog{
			Visible:   true,
			Message:   message,
			OnConfirm: onConfirm,
			OnCancel:  onCancel,
		}
	})
}

// HideConfirmDialog hides the confirmation dialog without calling
// any of its callbacks.
func (s *Store) HideConfirmDialog() {
	s.mutate(func(st *State) {
		st.Confirm = ConfirmDialog{}
	})
}

// ResolveConfirm hides the confirmation dialog and then calls its
// OnConfirm callback if confirmed is true, or its OnCancel callback
// otherwise. It reports false if no dialog was visible.
func (s *Store) ResolveConfirm(confirmed bool) bool {
	var d ConfirmDialog
	s.mutate(func(st *State) {
		d = st.Confirm
		st.Confirm = ConfirmDialog{}
	})
	if !d.Visible {
		return false
	}
	if confirmed {
		d.OnConfirm()
	} else {
		d.OnCancel()
	}
	return true
}
