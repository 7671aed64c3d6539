// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIncompatibleVersion indicates that a versioned document (such as
// a configuration file) may not be read by this program.
var ErrIncompatibleVersion = errors.New("incompatible version")

// SemVer represents a released semantic version, consisting of three
// components: major, minor, and patch. Incrementing the major version
// represents backward-incompatible changes, incrementing the minor
// version represents backward compatible feature additions, and the
// patch version represents changes which are invisible in the format.
// Missing trailing components are parsed as zero, so "1" and "1.0" are
// both equal to 1.0.0.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice as a string consisting of
// up to three dot-separated numbers and fills the sv SemVer instance.
// In case of errors, sv will be left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 {
		return fmt.Errorf("the %q has too many components", text)
	}
	var v SemVer
	for i, s := range p {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not a number", s)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` semantic version as its string representation.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns the sv semantic version as a dot-separated string
// consisting of three numbers like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// ReadableBy returns nil if a document which is written with the sv
// version may be read by a program which supports the `supported`
// version. That is, their major versions must be equal and sv minor
// version may not be newer than the supported minor version. Patch
// versions are ignored. Otherwise, an error wrapping the
// ErrIncompatibleVersion is returned.
func (sv SemVer) ReadableBy(supported SemVer) error {
	switch {
	case sv[0] != supported[0]:
		return fmt.Errorf(
			"%w: major version %d, expected %d",
			ErrIncompatibleVersion, sv[0], supported[0],
		)
	case sv[1] > supported[1]:
		return fmt.Errorf(
			"%w: minor version %d is newer than %d",
			ErrIncompatibleVersion, sv[1], supported[1],
		)
	}
	return nil
}
