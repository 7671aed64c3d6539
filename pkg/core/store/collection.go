// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package store

import "github.com/momeni/car-catalog/pkg/core/model"

// All helpers of this file return a new slice and leave their input
// intact.

func indexOf(cars []*model.Car, id int64) int {
	for i, c := range cars {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

// upsert replaces the entry which has the same ID as c, or appends c.
// Cars without an ID are always appended.
func upsert(cars []*model.Car, c *model.Car) []*model.Car {
	out := append([]*model.Car(nil), cars...)
	if c.ID() != model.NoID {
		if i := indexOf(out, c.ID()); i >= 0 {
			out[i] = c
			return out
		}
	}
	return append(out, c)
}

// replace substitutes the entry with the same ID as c, if any.
func replace(cars []*model.Car, c *model.Car) []*model.Car {
	out := append([]*model.Car(nil), cars...)
	if i := indexOf(out, c.ID()); i >= 0 {
		out[i] = c
	}
	return out
}

// substitute replaces the entry which is identified by key with c,
// dropping any other entry which already holds the c ID. If there is
// no entry with the key ID, c is upserted instead.
func substitute(cars []*model.Car, key int64, c *model.Car) []*model.Car {
	if indexOf(cars, key) < 0 {
		return upsert(cars, c)
	}
	out := make([]*model.Car, 0, len(cars))
	for _, x := range cars {
		switch {
		case x.ID() == key:
			out = append(out, c)
		case x.ID() == c.ID() && c.ID() != model.NoID:
		default:
			out = append(out, x)
		}
	}
	return out
}

func without(cars []*model.Car, id int64) []*model.Car {
	out := make([]*model.Car, 0, len(cars))
	for _, c := range cars {
		if c.ID() != id {
			out = append(out, c)
		}
	}
	return out
}

// dedupe drops nil entries and keeps the last entry of each ID in the
// position of its first occurrence.
func dedupe(cars []*model.Car) []*model.Car {
	out := make([]*model.Car, 0, len(cars))
	pos := make(map[int64]int, len(cars))
	for _, c := range cars {
		if c == nil {
			continue
		}
		if i, ok := pos[c.ID()]; ok && c.ID() != model.NoID {
			out[i] = c
			continue
		}
		pos[c.ID()] = len(out)
		out = append(out, c)
	}
	return out
}

// reselect returns the collection entry with the same ID as selected,
// or nil if there is no such entry.
func reselect(cars []*model.Car, selected *model.Car) *model.Car {
	if selected == nil {
		return nil
	}
	if i := indexOf(cars, selected.ID()); i >= 0 {
		return cars[i]
	}
	return nil
}
