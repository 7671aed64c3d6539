// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/car-catalog/pkg/adapter/config/settings"
	"github.com/momeni/car-catalog/pkg/adapter/restful/httpcl"
	"github.com/momeni/car-catalog/pkg/core/usecase/carsuc"
	"github.com/robfig/cron/v3"
)

// Client contains the settings of the client side, that is, the HTTP
// transport which talks to a catalog service and the use cases which
// drive the client store.
type Client struct {
	BaseURL   string `yaml:"base-url"`   // like http://localhost:4000
	Resource  string `yaml:"resource"`   // cars resource path
	UserAgent string `yaml:"user-agent"` // optional User-Agent header

	Timeout *settings.Duration `yaml:"timeout"`

	// RateLimit is the maximum number of requests per second.
	// Zero disables the rate limiting.
	RateLimit *float64 `yaml:"rate-limit"`
	Burst     *int     `yaml:"burst"`

	// CallLogging enables the debug logs of the use case calls.
	CallLogging *bool `yaml:"call-logging"`

	// WatchSchedule is a cron spec, like "@every 10s", which is used
	// by the cars watch command for reloading the catalog.
	WatchSchedule string `yaml:"watch-schedule"`
}

// ValidateAndNormalize validates the client settings and fills their
// defaults.
func (c *Client) ValidateAndNormalize() error {
	settings.DefaultString(&c.BaseURL, "http://localhost:4000")
	settings.DefaultString(&c.Resource, "cars")
	settings.DefaultString(&c.WatchSchedule, "@every 10s")
	settings.Default(&c.Timeout, settings.Duration(10*time.Second))
	settings.Default(&c.RateLimit, 0)
	settings.Default(&c.Burst, 1)
	settings.Default(&c.CallLogging, false)
	if err := settings.VerifyRange(
		c.Timeout,
		settings.Duration(100*time.Millisecond),
		settings.Duration(5*time.Minute),
	); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if err := settings.VerifyRange(c.RateLimit, 0, 1000); err != nil {
		return fmt.Errorf("rate-limit: %w", err)
	}
	if err := settings.VerifyRange(c.Burst, 1, 1000); err != nil {
		return fmt.Errorf("burst: %w", err)
	}
	if _, err := cron.ParseStandard(c.WatchSchedule); err != nil {
		return fmt.Errorf("watch-schedule %q: %w", c.WatchSchedule, err)
	}
	return nil
}

// Options returns the httpcl options which reflect the c settings.
func (c Client) Options() []httpcl.Option {
	opts := []httpcl.Option{
		httpcl.WithTimeout(c.Timeout.D()),
		httpcl.WithResource(c.Resource),
	}
	if c.UserAgent != "" {
		opts = append(opts, httpcl.WithUserAgent(c.UserAgent))
	}
	if *c.RateLimit > 0 {
		opts = append(opts, httpcl.WithRateLimit(*c.RateLimit, *c.Burst))
	}
	return opts
}

// NewUseCase instantiates the client transport which fits the mode
// deployment mode and wraps it by a cars use case.
func (c Client) NewUseCase(mode httpcl.Mode) (*carsuc.UseCase, error) {
	r, err := httpcl.New(mode, c.BaseURL, c.Options()...)
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", mode, err)
	}
	opts := make([]carsuc.Option, 0, 1)
	if *c.CallLogging {
		opts = append(opts, carsuc.WithCallLogging())
	}
	return carsuc.New(r, opts...)
}
