// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/car-catalog/pkg/adapter/db/jsonfile"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-catalog/pkg/adapter/restful/httpcl"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/momeni/car-catalog/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type GinTestSuite struct {
	suite.Suite

	Ctx context.Context
	Gin *gin.Engine
	Srv *httptest.Server
}

func TestGinTestSuite(t *testing.T) {
	suite.Run(t, &GinTestSuite{Ctx: context.Background()})
}

func (gts *GinTestSuite) SetupTest() {
	backend, err := jsonfile.Open("")
	gts.Require().NoError(err, "failed to open in-memory backend")

	gin.SetReleaseMode()
	gts.Gin = gin.New(
		gin.RequestID(), gin.Logger(), gin.Recovery(),
		gin.CORS([]string{"*"}),
	)
	gts.Require().NotNil(gts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(gts.Gin, backend, "/api")
	gts.Require().NoError(err, "failed to register Gin routes")
	gts.Srv = httptest.NewServer(gts.Gin)
}

func (gts *GinTestSuite) TearDownTest() {
	gts.Srv.Close()
}

func golf() *model.Car {
	car, err := model.NewCar(model.CarParams{
		Name:       "Golf",
		Brand:      "Volkswagen",
		Year:       2022,
		FuelType:   model.FuelTypeGasoline,
		Horsepower: 150,
	})
	if err != nil {
		panic(err)
	}
	return car
}

func (gts *GinTestSuite) clients() map[string]repo.Cars {
	path, err := httpcl.New(httpcl.ModeDevelopment, gts.Srv.URL+"/api")
	gts.Require().NoError(err)
	query, err := httpcl.New(httpcl.ModeProduction, gts.Srv.URL+"/api")
	gts.Require().NoError(err)
	return map[string]repo.Cars{"path": path, "query": query}
}

func (gts *GinTestSuite) TestClientsRoundTrip() {
	for name, cl := range gts.clients() {
		gts.Run(name, func() {
			ctx := gts.Ctx
			created, err := cl.Create(ctx, golf())
			gts.Require().NoError(err)
			gts.True(created.HasID())
			gts.Equal("Golf", created.Name())

			got, err := cl.Get(ctx, created.ID())
			gts.Require().NoError(err)
			gts.True(created.Equal(got))

			renamed, err := created.Rename("Golf R")
			gts.Require().NoError(err)
			updated, err := cl.Update(ctx, renamed)
			gts.Require().NoError(err)
			gts.Equal("Golf R", updated.Name())
			gts.Equal(created.ID(), updated.ID())

			cars, err := cl.List(ctx)
			gts.Require().NoError(err)
			ids := make([]int64, 0, len(cars))
			for _, c := range cars {
				ids = append(ids, c.ID())
			}
			gts.Contains(ids, created.ID())

			gts.Require().NoError(cl.Delete(ctx, created.ID()))
			_, err = cl.Get(ctx, created.ID())
			gts.True(cerr.IsNotFound(err), "got %v", err)
			err = cl.Delete(ctx, created.ID())
			gts.True(cerr.IsNotFound(err), "got %v", err)
		})
	}
}

func (gts *GinTestSuite) TestClientsSeeTheSameCatalog() {
	cls := gts.clients()
	created, err := cls["path"].Create(gts.Ctx, golf())
	gts.Require().NoError(err)
	got, err := cls["query"].Get(gts.Ctx, created.ID())
	gts.Require().NoError(err)
	gts.True(created.Equal(got))
}

func (gts *GinTestSuite) TestClientsMapErrors() {
	for name, cl := range gts.clients() {
		gts.Run(name, func() {
			_, err := cl.Update(gts.Ctx, golf().WithID(999))
			gts.True(cerr.IsNotFound(err), "got %v", err)

			_, err = cl.Get(gts.Ctx, -1)
			gts.True(cerr.IsNotFound(err), "got %v", err)
		})
	}
}

func (gts *GinTestSuite) send(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	return w
}

func (gts *GinTestSuite) TestCreateStatusAndShape() {
	w := gts.send(http.MethodPost, "/api/cars",
		`{"name":" Golf ","brand":"Volkswagen","year":2022,"fuelType":"Gasoline","horsepower":150}`,
	)
	gts.Equal(http.StatusCreated, w.Code)
	res := map[string]any{}
	gts.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	gts.Equal(map[string]any{
		"id":         float64(1),
		"name":       "Golf",
		"brand":      "Volkswagen",
		"year":       float64(2022),
		"fuelType":   "Gasoline",
		"horsepower": float64(150),
	}, res)

	w = gts.send(http.MethodGet, "/api/cars", "")
	gts.Equal(http.StatusOK, w.Code)
	gts.JSONEq(`[{"id":1,"name":"Golf","brand":"Volkswagen","year":2022,"fuelType":"Gasoline","horsepower":150}]`, w.Body.String())

	w = gts.send(http.MethodDelete, "/api/cars?id=1", "")
	gts.Equal(http.StatusNoContent, w.Code)
	gts.Empty(w.Body.String())

	w = gts.send(http.MethodGet, "/api/cars", "")
	gts.JSONEq(`[]`, w.Body.String())
}

func (gts *GinTestSuite) TestBadRequest() {
	for _, tc := range []struct {
		name, method, target, body string
		field, detail              string
	}{
		{
			name: "missing name", method: http.MethodPost, target: "/api/cars",
			body:  `{"brand":"VW","year":2022,"fuelType":"Gasoline","horsepower":150}`,
			field: "Name",
		},
		{
			name: "unknown fuel", method: http.MethodPost, target: "/api/cars",
			body:  `{"name":"Golf","brand":"VW","year":2022,"fuelType":"Petrol","horsepower":150}`,
			field: "FuelType",
		},
		{
			name: "zero horsepower", method: http.MethodPost, target: "/api/cars",
			body:  `{"name":"Golf","brand":"VW","year":2022,"fuelType":"Gasoline","horsepower":0}`,
			field: "Horsepower",
		},
		{
			name: "old year", method: http.MethodPost, target: "/api/cars",
			body:   `{"name":"Golf","brand":"VW","year":1900,"fuelType":"Gasoline","horsepower":150}`,
			detail: "invalid year",
		},
		{
			name: "not json", method: http.MethodPost, target: "/api/cars",
			body:   `{`,
			detail: "unexpected",
		},
		{
			name: "non-numeric id", method: http.MethodGet, target: "/api/cars/abc",
			field: "id",
		},
		{
			name: "missing query id", method: http.MethodDelete, target: "/api/cars",
			field: "id",
		},
		{
			name: "id mismatch", method: http.MethodPut, target: "/api/cars/2",
			body:   `{"id":3,"name":"Golf","brand":"VW","year":2022,"fuelType":"Gasoline","horsepower":150}`,
			detail: "does not match",
		},
	} {
		gts.Run(tc.name, func() {
			w := gts.send(tc.method, tc.target, tc.body)
			gts.Equal(http.StatusBadRequest, w.Code, w.Body.String())
			res := map[string]any{}
			gts.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
			if tc.field != "" {
				gts.Contains(res, tc.field)
			}
			if tc.detail != "" {
				gts.Contains(res["detail"], tc.detail)
			}
		})
	}
}

func (gts *GinTestSuite) TestNotFound() {
	w := gts.send(http.MethodGet, "/api/cars/42", "")
	gts.Equal(http.StatusNotFound, w.Code)
	gts.Contains(w.Body.String(), `"detail"`)

	w = gts.send(http.MethodPut, "/api/cars?id=42",
		`{"name":"Golf","brand":"VW","year":2022,"fuelType":"Gasoline","horsepower":150}`,
	)
	gts.Equal(http.StatusNotFound, w.Code)
}

func (gts *GinTestSuite) TestMethodNotAllowed() {
	w := gts.send(http.MethodPatch, "/api/cars/1", `{}`)
	gts.Equal(http.StatusMethodNotAllowed, w.Code)
}

func (gts *GinTestSuite) TestHealthzAndRequestID() {
	w := gts.send(http.MethodGet, "/healthz", "")
	gts.Equal(http.StatusOK, w.Code)
	gts.NotEmpty(w.Header().Get(log.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(log.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	gts.Equal("abc-123", w.Header().Get(log.RequestIDHeader))
}

func (gts *GinTestSuite) TestAccessLogKeepsRequestID() {
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))
	defer slog.SetDefault(prev)

	e := gin.New(gin.RequestID(), gin.Logger())
	e.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(log.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	gts.Equal(http.StatusNoContent, w.Code)
	gts.Equal("abc-123", w.Header().Get(log.RequestIDHeader))
	gts.Contains(buf.String(), `"request_id":"abc-123"`)
	gts.NotContains(buf.String(), "request-id")
}

func (gts *GinTestSuite) TestCORS() {
	req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
	req.Header.Set("Origin", "http://ui.example.com")
	w := httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	gts.Equal(http.StatusOK, w.Code)
	gts.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}
