// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/momeni/car-catalog/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationText(t *testing.T) {
	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte(" 90s ")))
	assert.Equal(t, 90*time.Second, d.D())
	assert.Equal(t, "1m30s", d.String())
	assert.Equal(t, "2m", settings.Duration(2*time.Minute).String())
	assert.Equal(t, "3h", settings.Duration(3*time.Hour).String())
	assert.Error(t, d.UnmarshalText([]byte("soon")))
	assert.Equal(t, 90*time.Second, d.D(), "left unchanged")
}

func TestDefaults(t *testing.T) {
	var b *bool
	settings.Default(&b, true)
	require.NotNil(t, b)
	assert.True(t, *b)
	f := false
	b = &f
	settings.Default(&b, true)
	assert.False(t, *b)

	s := "  "
	settings.DefaultString(&s, "cars")
	assert.Equal(t, "cars", s)
	s = " api/cars "
	settings.DefaultString(&s, "cars")
	assert.Equal(t, "api/cars", s)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CATALOG_TEST_VALUE", " x ")
	t.Setenv("CATALOG_TEST_BLANK", " ")
	s := "orig"
	assert.False(t, settings.FromEnv(&s, "CATALOG_TEST_BLANK"))
	assert.False(t, settings.FromEnv(&s, "CATALOG_TEST_MISSING"))
	assert.Equal(t, "orig", s)
	assert.True(t, settings.FromEnv(&s, "CATALOG_TEST_VALUE"))
	assert.Equal(t, "x", s)
}

func TestVerifyRange(t *testing.T) {
	assert.NoError(t, settings.VerifyRange[int](nil, 1, 5))
	v := 3
	assert.NoError(t, settings.VerifyRange(&v, 1, 5))
	v = 0
	err := settings.VerifyRange(&v, 1, 5)
	var oore *settings.OutOfRangeError[int]
	require.ErrorAs(t, err, &oore)
	assert.True(t, oore.LessThanMin)
	assert.Equal(t, "0 is less than min (1)", err.Error())
	v = 6
	assert.EqualError(t,
		settings.VerifyRange(&v, 1, 5), "6 is greater than max (5)",
	)
}
