// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package httpcl implements the cars repository by calling a remote
// catalog service over HTTP. Two addressing styles are supported:
//
//   - PathClient addresses one car as /cars/:id, which is served by
//     JSON-server like development services.
//   - QueryClient addresses one car as /cars?id=N, which is served by
//     the production (serverless) functions.
//
// The New function chooses one of them based on the deployment Mode.
// Both clients send an X-Request-Id header on every request, map
// response status codes to the cerr error categories, and log every
// failure once before returning it. Requests are never retried.
package httpcl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/momeni/car-catalog/pkg/core/repo"
)

// Mode is a deployment mode which selects the addressing style.
type Mode string

// Supported deployment modes.
const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ErrUnknownMode indicates that a mode string is not supported.
var ErrUnknownMode = errors.New("unknown deployment mode")

// ParseMode parses s as a deployment Mode. The "dev" and "prod" short
// forms are accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// New instantiates the cars repository client which fits the mode
// deployment mode, that is, a PathClient for development and a
// QueryClient for production. The baseURL is the URL prefix of the
// cars resource, e.g., http://localhost:4000 for /cars paths.
func New(mode Mode, baseURL string, opts ...Option) (repo.Cars, error) {
	switch mode {
	case ModeDevelopment:
		return NewPathClient(baseURL, opts...)
	case ModeProduction:
		return NewQueryClient(baseURL, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// PathClient is a cars repository which addresses each car by
// appending its ID to the resource path, like /cars/12.
type PathClient struct {
	*transport
}

// NewPathClient instantiates a PathClient for the baseURL service.
func NewPathClient(baseURL string, opts ...Option) (*PathClient, error) {
	t, err := newTransport(baseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("NewPathClient(%q): %w", baseURL, err)
	}
	t.itemURL = func(id int64) string {
		return t.collection.JoinPath(fmt.Sprint(id)).String()
	}
	return &PathClient{transport: t}, nil
}

// QueryClient is a cars repository which addresses each car by
// passing its ID as a query parameter, like /cars?id=12.
type QueryClient struct {
	*transport
}

// NewQueryClient instantiates a QueryClient for the baseURL service.
func NewQueryClient(baseURL string, opts ...Option) (*QueryClient, error) {
	t, err := newTransport(baseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("NewQueryClient(%q): %w", baseURL, err)
	}
	t.itemURL = func(id int64) string {
		u := *t.collection
		q := u.Query()
		q.Set("id", fmt.Sprint(id))
		u.RawQuery = q.Encode()
		return u.String()
	}
	return &QueryClient{transport: t}, nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("base URL has no host")
	}
	u.RawQuery, u.Fragment = "", ""
	return u, nil
}
