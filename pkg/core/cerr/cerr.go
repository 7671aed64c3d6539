// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core error types. Each Error wraps a cause
// and carries the HTTP status code which describes its category, so the
// same value may be produced by an HTTP client adapter (from a response
// status) and consumed by a RESTful server adapter (as a response
// status) without any further translation.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedStatus is wrapped by errors which are created from a
// non-successful HTTP response status code.
var ErrUnexpectedStatus = errors.New("unexpected response status")

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Transport wraps err which was caused by the remote side or by the
// network itself. The status is kept as is if it is an error status,
// otherwise http.StatusBadGateway is used.
func Transport(err error, status int) *Error {
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	return &Error{Err: err, HTTPStatusCode: status}
}

// FromStatus creates an Error for a non-successful HTTP response.
// The 404 status is mapped to NotFound, 400 is mapped to BadRequest,
// 422 keeps its own status (and is a validation error as well), and
// everything else is a Transport error. The detail
// string, which is usually taken from the response body, is included
// in the error message if it is not empty.
func FromStatus(status int, detail string) *Error {
	err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	if detail != "" {
		err = fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, status, detail)
	}
	switch status {
	case http.StatusNotFound:
		return NotFound(err)
	case http.StatusBadRequest:
		return BadRequest(err)
	case http.StatusUnprocessableEntity:
		return &Error{Err: err, HTTPStatusCode: status}
	default:
		return Transport(err, status)
	}
}

// StatusCode returns the HTTP status code which is carried by err.
// Errors which are not wrapping an *Error are reported as
// http.StatusInternalServerError.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err wraps a NotFound error.
func IsNotFound(err error) bool {
	return err != nil && StatusCode(err) == http.StatusNotFound
}

// IsValidation reports whether err wraps a BadRequest error.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.HTTPStatusCode == http.StatusBadRequest ||
		e.HTTPStatusCode == http.StatusUnprocessableEntity
}

// IsTransport reports whether err wraps an Error which is neither a
// NotFound nor a validation error.
func IsTransport(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return !IsNotFound(err) && !IsValidation(err)
}
