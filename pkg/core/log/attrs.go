// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"errors"
	"log/slog"

	"github.com/momeni/car-catalog/pkg/core/cerr"
)

// Valuer returns an Attr which is resolved by value.LogValue(), e.g.,
// a *model.Car which is logged as a group of its fields.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// CarID returns the "id" Attr of a car identifier. Negative IDs are
// the provisional ones of the client store.
func CarID(id int64) slog.Attr {
	return slog.Int64("id", id)
}

// Err returns an Attr for the given error value. Errors which carry an
// HTTP status (see the cerr package) are logged as a group with msg
// and status keys, so failed calls may be filtered by their status.
// Other errors are logged as their Error() string and a nil error is
// logged as "no-error".
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	var ce *cerr.Error
	if errors.As(value, &ce) {
		return slog.Group(key,
			slog.String("msg", value.Error()),
			slog.Int("status", ce.HTTPStatusCode),
		)
	}
	return slog.String(key, value.Error())
}
