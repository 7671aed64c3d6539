// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"math"
	"testing"

	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPowerRejectsNonPositive(t *testing.T) {
	for _, v := range []float64{
		0, -1, -0.0001, -1000, math.NaN(), math.Inf(1), math.Inf(-1),
	} {
		_, err := model.NewPower(v)
		assert.ErrorIs(t, err, model.ErrInvalidMagnitude, "value %v", v)
	}
}

func TestNewPowerKeepsValue(t *testing.T) {
	for _, v := range []float64{0.1, 1, 75, 150, 750.5} {
		p, err := model.NewPower(v)
		require.NoError(t, err, "value %v", v)
		assert.Equal(t, v, p.Value())
	}
}

func TestPowerKilowatts(t *testing.T) {
	assert.Equal(t, 73.55, model.MustPower(100).Kilowatts())
	assert.Equal(t, 147.1, model.MustPower(200).Kilowatts())
	assert.Equal(t, 180.2, model.MustPower(245).Kilowatts())
}

func TestPowerEqualAndString(t *testing.T) {
	a := model.MustPower(150)
	assert.True(t, a.Equal(model.MustPower(150)))
	assert.False(t, a.Equal(model.MustPower(151)))
	assert.Equal(t, "150 CV", a.String())
	assert.Equal(t, "110.5 CV", model.MustPower(110.5).String())
}

func TestMustPowerPanics(t *testing.T) {
	assert.Panics(t, func() { model.MustPower(0) })
}
