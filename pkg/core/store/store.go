// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package store provides the client side catalog state container.
//
// A Store owns the list of cars which are presented by a UI, the
// current selection, and a few UI flags. All state changes go through
// the named methods of Store. Synchronous methods change the state
// immediately, while the Load, Create, Save, and Remove actions call
// the cars use cases and apply their changes optimistically, that is,
// before the remote side confirms them. A failed optimistic change is
// rolled back and its error is returned to the caller.
//
// Overlapping actions are not queued. Each one operates on the state
// which exists when it starts and when its call completes, so the last
// completed action wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/momeni/car-catalog/pkg/core/model"
)

// ErrUnknownCar indicates that a car ID is not in the collection.
var ErrUnknownCar = errors.New("car is not in the collection")

// ErrNilCar indicates that a nil *model.Car is passed instead of a car.
var ErrNilCar = errors.New("nil car")

// UseCases is the set of cars use cases which are used by a Store.
// It is implemented by the *carsuc.UseCase type.
type UseCases interface {
	FetchCars(ctx context.Context) ([]*model.Car, error)
	CreateCar(ctx context.Context, car *model.Car) (*model.Car, error)
	UpdateCar(ctx context.Context, car *model.Car) (*model.Car, error)
	DeleteCar(ctx context.Context, id int64) error
}

// ConfirmDialog describes a pending yes/no question for the user.
type ConfirmDialog struct {
	Visible   bool
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// State is a read-only snapshot of a Store.
//
// Cars never holds two entries with the same non-zero ID. Selected is
// either nil or one of the Cars entries. Version is incremented on
// every change, so subscribers may order the snapshots which they
// receive from concurrent actions.
type State struct {
	Cars     []*model.Car
	Loading  bool
	Err      error
	Selected *model.Car
	FormOpen bool
	Confirm  ConfirmDialog
	Version  uint64
}

// Find returns the car which is identified by id.
func (s State) Find(id int64) (*model.Car, bool) {
	if i := indexOf(s.Cars, id); i >= 0 {
		return s.Cars[i], true
	}
	return nil, false
}

// Store is a concurrency-safe catalog state container. It must be
// created with the New function.
//
// The mu mutex guards the state and is never held while a use case
// is running. The st.Cars slice is never modified in place, so old
// slices may be kept as snapshots.
type Store struct {
	uc UseCases

	mu       sync.Mutex
	st       State
	inFlight int
	lastTemp int64
	subs     []subscriber
	lastSub  uint64
}

type subscriber struct {
	id uint64
	fn func(State)
}

// New instantiates a Store which uses the uc use cases for its
// asynchronous actions.
func New(uc UseCases, opts ...Option) (*Store, error) {
	if uc == nil {
		return nil, errors.New("cars use cases is nil")
	}
	s := &Store{uc: uc}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return s, nil
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

// Subscribe registers fn in order to be called with a fresh snapshot
// after every state change. The fn is called without holding the
// store lock, so it may call other Store methods. The returned
// function unregisters fn.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSub++
	id := s.lastSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Reset drops all cars, flags, and errors. Subscribers are kept and
// notified. Temporary IDs are not reused after a Reset. It should not
// be called while an action is in flight.
func (s *Store) Reset() {
	s.mutate(func(st *State) {
		*st = State{Version: st.Version}
		s.inFlight = 0
	})
}

// mutate runs f while holding the lock, keeps the selection pointing
// to an existing entry, bumps the version, and notifies subscribers
// after releasing the lock.
func (s *Store) mutate(f func(st *State)) {
	s.mu.Lock()
	f(&s.st)
	s.st.Selected = reselect(s.st.Cars, s.st.Selected)
	s.st.Version++
	snap := s.st.clone()
	fns := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		fns = append(fns, sub.fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (st State) clone() State {
	cc := st
	cc.Cars = append([]*model.Car(nil), st.Cars...)
	return cc
}
