// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package httpcl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/car-catalog/pkg/adapter/restful/cardto"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
	"golang.org/x/time/rate"
)

const (
	defaultResource  = "cars"
	defaultUserAgent = "car-catalog-client/1"
	maxDetailBytes   = 4 << 10
)

// transport contains the repository operations which are common to
// both addressing styles. Only the itemURL differs between them.
type transport struct {
	hc        *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	userAgent string
	resource  string

	collection *url.URL
	itemURL    func(id int64) string
}

func newTransport(baseURL string, opts []Option) (*transport, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	t := &transport{}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if t.hc == nil {
		t.hc = &http.Client{}
	}
	if t.timeout > 0 {
		hc := *t.hc
		hc.Timeout = t.timeout
		t.hc = &hc
	}
	if t.userAgent == "" {
		t.userAgent = defaultUserAgent
	}
	if t.resource == "" {
		t.resource = defaultResource
	}
	t.collection = base.JoinPath(t.resource)
	return t, nil
}

// List fetches all cars using GET /cars.
func (t *transport) List(ctx context.Context) ([]*model.Car, error) {
	var dtos []cardto.CarDTO
	u := t.collection.String()
	if err := t.do(ctx, http.MethodGet, u, nil, &dtos); err != nil {
		return nil, err
	}
	cars, err := cardto.ToDomainCars(dtos)
	if err != nil {
		return nil, t.invalidBody(ctx, http.MethodGet, u, err)
	}
	return cars, nil
}

// Get fetches one car.
func (t *transport) Get(ctx context.Context, id int64) (*model.Car, error) {
	return t.one(ctx, http.MethodGet, t.itemURL(id), nil)
}

// Create posts car, without its ID, to the /cars collection.
func (t *transport) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	dto := cardto.ToCarDTO(car)
	dto.ID = model.NoID
	return t.one(ctx, http.MethodPost, t.collection.String(), dto)
}

// Update puts all car fields to the car with the same ID.
func (t *transport) Update(ctx context.Context, car *model.Car) (*model.Car, error) {
	if !car.HasID() {
		return nil, cerr.BadRequest(fmt.Errorf("Update: %w", model.ErrMissingID))
	}
	return t.one(ctx, http.MethodPut, t.itemURL(car.ID()), cardto.ToCarDTO(car))
}

// Delete removes the car which is identified by id.
func (t *transport) Delete(ctx context.Context, id int64) error {
	return t.do(ctx, http.MethodDelete, t.itemURL(id), nil, nil)
}

func (t *transport) one(
	ctx context.Context, method, u string, in any,
) (*model.Car, error) {
	var dto cardto.CarDTO
	if err := t.do(ctx, method, u, in, &dto); err != nil {
		return nil, err
	}
	car, err := cardto.ToDomainCar(dto)
	if err != nil {
		return nil, t.invalidBody(ctx, method, u, err)
	}
	return car, nil
}

// do sends one request with the JSON encoding of in as its body (if
// in is not nil) and decodes the response body into out (if out is
// not nil). Failures are logged and returned as *cerr.Error values.
func (t *transport) do(
	ctx context.Context, method, u string, in, out any,
) error {
	rid := uuid.NewString()
	ctx = log.WithRequestID(ctx, rid)
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return t.fail(ctx, method, u, 0, cerr.Transport(
				fmt.Errorf("marshaling request body: %w", err), 0,
			))
		}
		body = bytes.NewReader(b)
	}
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return t.fail(ctx, method, u, 0, cerr.Transport(
				fmt.Errorf("waiting for rate limiter: %w", err), 0,
			))
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return t.fail(ctx, method, u, 0, cerr.Transport(
			fmt.Errorf("creating %s request: %w", method, err), 0,
		))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set(log.RequestIDHeader, rid)

	resp, err := t.hc.Do(req)
	if err != nil {
		return t.fail(ctx, method, u, 0, cerr.Transport(
			fmt.Errorf("%s %s: %w", method, u, err), 0,
		))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readDetail(resp.Body)
		return t.fail(ctx, method, u, resp.StatusCode, cerr.FromStatus(
			resp.StatusCode, detail,
		))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return t.invalidBody(ctx, method, u, err)
	}
	return nil
}

func (t *transport) invalidBody(
	ctx context.Context, method, u string, err error,
) error {
	return t.fail(ctx, method, u, 0, cerr.Transport(
		fmt.Errorf("decoding %s %s response: %w", method, u, err), 0,
	))
}

func (t *transport) fail(
	ctx context.Context, method, u string, status int, err *cerr.Error,
) error {
	log.Warn(ctx, "car catalog request failed",
		slog.String("method", method),
		slog.String("url", u),
		slog.Int("status", status),
		log.Err("err", err),
	)
	return err
}

// readDetail reads the "detail" field of a JSON error body, or the
// whole (truncated) body if it is not in that shape.
func readDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxDetailBytes))
	if err != nil || len(b) == 0 {
		return ""
	}
	var e struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(b, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(b))
}
