// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package httpcl_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/car-catalog/pkg/adapter/restful/cardto"
	"github.com/momeni/car-catalog/pkg/adapter/restful/httpcl"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/momeni/car-catalog/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type request struct {
	Method, Path, Query, RequestID, UserAgent string
	Body                                      string
}

type ClientTestSuite struct {
	suite.Suite

	mu       sync.Mutex
	requests []request
	status   int
	respond  string
	srv      *httptest.Server
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (cts *ClientTestSuite) SetupTest() {
	cts.requests = nil
	cts.status = http.StatusOK
	cts.respond = `{"id":7,"name":"Golf","brand":"Volkswagen","year":2022,"fuelType":"Gasoline","horsepower":150}`
	cts.srv = httptest.NewServer(http.HandlerFunc(cts.handle))
}

func (cts *ClientTestSuite) TearDownTest() {
	cts.srv.Close()
}

func (cts *ClientTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	cts.mu.Lock()
	cts.requests = append(cts.requests, request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		RequestID: r.Header.Get("X-Request-Id"),
		UserAgent: r.Header.Get("User-Agent"),
		Body:      string(b),
	})
	status, respond := cts.status, cts.respond
	cts.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, respond)
}

func (cts *ClientTestSuite) reply(status int, body string) {
	cts.mu.Lock()
	defer cts.mu.Unlock()
	cts.status, cts.respond = status, body
}

func (cts *ClientTestSuite) last() request {
	cts.mu.Lock()
	defer cts.mu.Unlock()
	cts.Require().NotEmpty(cts.requests)
	return cts.requests[len(cts.requests)-1]
}

func (cts *ClientTestSuite) golf(id int64) *model.Car {
	c, err := cardto.ToDomainCar(cardto.CarDTO{
		ID: id, Name: "Golf", Brand: "Volkswagen", Year: 2022,
		FuelType: "Gasoline", Horsepower: 150,
	})
	cts.Require().NoError(err)
	return c
}

func (cts *ClientTestSuite) TestModeSelection() {
	c, err := httpcl.New(httpcl.ModeDevelopment, cts.srv.URL)
	cts.Require().NoError(err)
	cts.IsType(&httpcl.PathClient{}, c)

	c, err = httpcl.New(httpcl.ModeProduction, cts.srv.URL)
	cts.Require().NoError(err)
	cts.IsType(&httpcl.QueryClient{}, c)

	_, err = httpcl.New("staging", cts.srv.URL)
	cts.ErrorIs(err, httpcl.ErrUnknownMode)

	for s, m := range map[string]httpcl.Mode{
		"development": httpcl.ModeDevelopment,
		"dev":         httpcl.ModeDevelopment,
		" Production": httpcl.ModeProduction,
	} {
		got, err := httpcl.ParseMode(s)
		cts.NoError(err)
		cts.Equal(m, got)
	}
}

func (cts *ClientTestSuite) TestPathAddressing() {
	ctx := context.Background()
	c, err := httpcl.NewPathClient(cts.srv.URL, httpcl.WithUserAgent("test-ua"))
	cts.Require().NoError(err)

	car, err := c.Get(ctx, 7)
	cts.Require().NoError(err)
	cts.Equal(int64(7), car.ID())
	r := cts.last()
	cts.Equal("GET", r.Method)
	cts.Equal("/cars/7", r.Path)
	cts.Equal("test-ua", r.UserAgent)
	_, err = uuid.Parse(r.RequestID)
	cts.NoError(err, "request id must be a UUID")

	_, err = c.Update(ctx, cts.golf(7))
	cts.Require().NoError(err)
	r = cts.last()
	cts.Equal("PUT", r.Method)
	cts.Equal("/cars/7", r.Path)
	cts.JSONEq(cts.respond, r.Body)

	cts.reply(http.StatusNoContent, "")
	cts.Require().NoError(c.Delete(ctx, 7))
	r = cts.last()
	cts.Equal("DELETE", r.Method)
	cts.Equal("/cars/7", r.Path)
}

func (cts *ClientTestSuite) TestQueryAddressing() {
	ctx := context.Background()
	c, err := httpcl.NewQueryClient(
		cts.srv.URL+"/api", httpcl.WithResource("car-models"),
	)
	cts.Require().NoError(err)

	_, err = c.Get(ctx, 7)
	cts.Require().NoError(err)
	r := cts.last()
	cts.Equal("/api/car-models", r.Path)
	cts.Equal("id=7", r.Query)

	_, err = c.Update(ctx, cts.golf(7))
	cts.Require().NoError(err)
	r = cts.last()
	cts.Equal("PUT", r.Method)
	cts.Equal("id=7", r.Query)
}

func (cts *ClientTestSuite) TestCreateOmitsID() {
	cts.reply(http.StatusCreated, cts.respond)
	c, err := httpcl.NewPathClient(cts.srv.URL)
	cts.Require().NoError(err)
	car, err := c.Create(context.Background(), cts.golf(-2))
	cts.Require().NoError(err)
	cts.Equal(int64(7), car.ID())

	r := cts.last()
	cts.Equal("POST", r.Method)
	cts.Equal("/cars", r.Path)
	var body map[string]any
	cts.Require().NoError(json.Unmarshal([]byte(r.Body), &body))
	cts.NotContains(body, "id")
	cts.Equal("Golf", body["name"])
}

func (cts *ClientTestSuite) TestList() {
	cts.reply(http.StatusOK, `[{"id":1,"name":"Golf","brand":"VW","year":2022,"fuelType":"Gasoline","horsepower":150},` +
		`{"id":2,"name":"Taycan","brand":"Porsche","year":2024,"fuelType":"Electric","horsepower":750}]`)
	c, err := httpcl.NewQueryClient(cts.srv.URL)
	cts.Require().NoError(err)
	cars, err := c.List(context.Background())
	cts.Require().NoError(err)
	cts.Require().Len(cars, 2)
	cts.True(cars[1].IsFullyElectric())
	cts.Equal("/cars", cts.last().Path)
}

func (cts *ClientTestSuite) TestStatusMapping() {
	ctx := context.Background()
	c, err := httpcl.NewPathClient(cts.srv.URL)
	cts.Require().NoError(err)

	cts.reply(http.StatusNotFound, `{"detail":"car 9 not found"}`)
	_, err = c.Get(ctx, 9)
	cts.True(cerr.IsNotFound(err))
	cts.Contains(err.Error(), "car 9 not found")
	cts.True(cerr.IsNotFound(c.Delete(ctx, 9)))

	cts.reply(http.StatusBadRequest, `{"detail":"bad year"}`)
	_, err = c.Create(ctx, cts.golf(0))
	cts.True(cerr.IsValidation(err))

	cts.reply(http.StatusUnprocessableEntity, `nope`)
	_, err = c.Create(ctx, cts.golf(0))
	cts.True(cerr.IsValidation(err))

	cts.reply(http.StatusInternalServerError, ``)
	_, err = c.List(ctx)
	cts.True(cerr.IsTransport(err))
	cts.Equal(http.StatusInternalServerError, cerr.StatusCode(err))
}

func (cts *ClientTestSuite) TestInvalidBodies() {
	ctx := context.Background()
	c, err := httpcl.NewPathClient(cts.srv.URL)
	cts.Require().NoError(err)

	cts.reply(http.StatusOK, `{not json`)
	_, err = c.Get(ctx, 1)
	cts.True(cerr.IsTransport(err))
	cts.Equal(http.StatusBadGateway, cerr.StatusCode(err))

	cts.reply(http.StatusOK, `{"id":1,"name":"Golf","brand":"VW","year":2022,"fuelType":"Gasoline","horsepower":0}`)
	_, err = c.Get(ctx, 1)
	cts.True(cerr.IsTransport(err))
	cts.ErrorIs(err, model.ErrInvalidMagnitude)
}

func (cts *ClientTestSuite) TestUpdateRequiresID() {
	c, err := httpcl.NewPathClient(cts.srv.URL)
	cts.Require().NoError(err)
	_, err = c.Update(context.Background(), cts.golf(0))
	cts.ErrorIs(err, model.ErrMissingID)
	cts.Empty(cts.requests)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	var c repo.Cars
	c, err := httpcl.NewPathClient(u, httpcl.WithTimeout(2*time.Second))
	require.NoError(t, err)
	_, err = c.List(context.Background())
	assert.True(t, cerr.IsTransport(err))
	assert.Equal(t, http.StatusBadGateway, cerr.StatusCode(err))
}

func TestRateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()
	c, err := httpcl.NewPathClient(srv.URL, httpcl.WithRateLimit(0.001, 1))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.List(ctx)
	require.NoError(t, err, "first request uses the burst")
	_, err = c.List(ctx)
	assert.True(t, cerr.IsTransport(err))
}

func TestInvalidConstruction(t *testing.T) {
	for _, u := range []string{"", "ftp://x", "http://", "::"} {
		_, err := httpcl.NewPathClient(u)
		assert.Error(t, err, u)
	}
	_, err := httpcl.NewPathClient("http://x", httpcl.WithRateLimit(0, 1))
	assert.Error(t, err)
	_, err = httpcl.NewQueryClient("http://x", httpcl.WithTimeout(0))
	assert.Error(t, err)
	_, err = httpcl.NewQueryClient("http://x", httpcl.WithHTTPClient(nil))
	assert.Error(t, err)
}
