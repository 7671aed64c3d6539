// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package httpcl

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Option is a functional option for the PathClient and QueryClient.
type Option func(t *transport) error

// WithHTTPClient option makes the client to send its requests using
// the hc HTTP client instead of a fresh one.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *transport) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		t.hc = hc
		return nil
	}
}

// WithTimeout option limits the total duration of each request,
// including reading of its response body.
func WithTimeout(d time.Duration) Option {
	return func(t *transport) error {
		if d <= 0 {
			return fmt.Errorf("timeout (%v) is not positive", d)
		}
		t.timeout = d
		return nil
	}
}

// WithRateLimit option limits the client to send at most rps requests
// per second, with bursts of at most burst requests. Requests wait for
// the limiter while their context is not done.
func WithRateLimit(rps float64, burst int) Option {
	return func(t *transport) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf(
				"rate limit (%v/s, burst %d) is not positive", rps, burst,
			)
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithUserAgent option sets the User-Agent header of all requests.
func WithUserAgent(ua string) Option {
	return func(t *transport) error {
		if strings.TrimSpace(ua) == "" {
			return errors.New("user agent is empty")
		}
		t.userAgent = ua
		return nil
	}
}

// WithResource option changes the resource path which is appended to
// the base URL from "cars" to the given path, e.g., "api/car-models".
func WithResource(path string) Option {
	return func(t *transport) error {
		path = strings.Trim(path, "/ ")
		if path == "" {
			return errors.New("resource path is empty")
		}
		t.resource = path
		return nil
	}
}
