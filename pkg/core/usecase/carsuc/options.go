// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import "errors"

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithCallLogging option configures a cars UseCase instance in order
// to log every use case call, its elapsed time, and its error (if any)
// at the debug level. This option may be passed to the New() function.
func WithCallLogging() Option {
	return func(uc *UseCase) error {
		if uc.callLogging {
			return errors.New("call logging is already enabled")
		}
		uc.callLogging = true
		return nil
	}
}
