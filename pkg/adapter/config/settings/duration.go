// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a specialization of the time.Duration which can be
// decoded from (and encoded to) strings like 1m30s in YAML files.
type Duration time.Duration

// UnmarshalText reifies the encoding.TextUnmarshaler interface, so
// a byte slice (e.g., read from a YAML file) can be decoded as a
// time duration. The format of the `data` argument should conform
// to the time.ParseDuration expected format. In absence of errors,
// a nil error will be returned and only then, `d` receiver will be
// updated to contain the decoded duration.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `d` duration using its String method.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// String returns the time.Duration representation of `d`, like 2h3m4s,
// but zero trailing units are dropped, so 2m is returned instead of
// 2m0s. A zero duration is represented as 0s.
func (d Duration) String() string {
	s := time.Duration(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// D returns `d` as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

// LogValue implements slog.LogValuer and returns a DurationValue.
func (d Duration) LogValue() slog.Value {
	return slog.DurationValue(time.Duration(d))
}
