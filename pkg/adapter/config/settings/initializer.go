// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings contains the helpers which are shared by the config
// structs for filling default values, applying environment overrides,
// and verifying ranges. Optional settings are kept as pointers, so a
// missing setting (nil) can be told apart from a zero setting.
package settings

import (
	"os"
	"strings"
)

// Default overwrites the (*t) pointer, which should be nil, in order to
// point to a newly allocated T instance which is initialized with the
// v value. If the (*t) pointer was not nil, Default performs no action.
func Default[T any](t **T, v T) {
	if (*t) != nil {
		return
	}
	(*t) = &v
}

// DefaultString replaces an empty (or blank) *s with the v value and
// trims it otherwise.
func DefaultString(s *string, v string) {
	*s = strings.TrimSpace(*s)
	if *s == "" {
		*s = v
	}
}

// FromEnv overwrites *dst with the value of the name environment
// variable if it is set to a non-blank value. It reports whether *dst
// was overwritten.
func FromEnv(dst *string, name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return false
	}
	*dst = strings.TrimSpace(v)
	return true
}
