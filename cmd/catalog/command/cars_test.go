// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momeni/car-catalog/pkg/adapter/db/jsonfile"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-catalog/pkg/adapter/restful/httpcl"
	"github.com/momeni/car-catalog/pkg/core/store"
	"github.com/momeni/car-catalog/pkg/core/usecase/carsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CarsCmdTestSuite struct {
	suite.Suite

	srv *httptest.Server
}

func TestCarsCmdTestSuite(t *testing.T) {
	suite.Run(t, new(CarsCmdTestSuite))
}

func (cts *CarsCmdTestSuite) SetupTest() {
	backend, err := jsonfile.Open("")
	cts.Require().NoError(err)
	gin.SetReleaseMode()
	e := gin.New(gin.RequestID())
	cts.Require().NoError(routes.Register(e, backend, "/"))
	cts.srv = httptest.NewServer(e)
	cts.T().Setenv("CATALOG_BASE_URL", cts.srv.URL)
	cts.T().Setenv("CATALOG_LOG_LEVEL", "error")
}

func (cts *CarsCmdTestSuite) TearDownTest() {
	cts.srv.Close()
}

// run executes a fresh cars command tree with args and stdin.
func (cts *CarsCmdTestSuite) run(stdin string, args ...string) (string, error) {
	cmd := newCarsCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (cts *CarsCmdTestSuite) addGolf(mode string) {
	cts.T().Setenv("CATALOG_MODE", mode)
	out, err := cts.run("", "add",
		"--name", "Golf", "--brand", "Volkswagen", "--year", "2022",
		"--fuel", "Gasoline", "--hp", "150",
	)
	cts.Require().NoError(err)
	cts.Contains(out, "name:      Golf")
	cts.Contains(out, "power:     150 CV (110.3")
}

func (cts *CarsCmdTestSuite) TestAddListShow() {
	for _, mode := range []string{"development", "production"} {
		cts.Run(mode, func() {
			cts.addGolf(mode)
			out, err := cts.run("", "list")
			cts.Require().NoError(err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			cts.Require().NotEmpty(lines)
			cts.True(strings.HasPrefix(lines[0], "ID"))
			cts.Contains(lines[len(lines)-1], "Volkswagen")

			out, err = cts.run("", "show", "1")
			cts.Require().NoError(err)
			cts.Contains(out, "id:        1")
			cts.Contains(out, "electric:  false")
		})
	}
}

func (cts *CarsCmdTestSuite) TestUpdateChangesOnlyGivenFields() {
	cts.addGolf("development")
	out, err := cts.run("", "update", "1", "--year", "2020", "--fuel", "Hybrid")
	cts.Require().NoError(err)
	cts.Contains(out, "name:      Golf")
	cts.Contains(out, "fuel:      Hybrid")
	cts.Contains(out, "year:      2020")

	_, err = cts.run("", "update", "1", "--hp", "-3")
	cts.Error(err)
	_, err = cts.run("", "update", "7", "--year", "2020")
	cts.ErrorIs(err, store.ErrUnknownCar)
}

func (cts *CarsCmdTestSuite) TestRemoveAsksFirst() {
	cts.addGolf("production")
	out, err := cts.run("n\n", "rm", "1")
	cts.Require().NoError(err)
	cts.Contains(out, "Delete Volkswagen Golf (#1)? [y/N]")
	cts.Contains(out, "canceled")

	out, err = cts.run("", "list")
	cts.Require().NoError(err)
	cts.Contains(out, "Golf")

	out, err = cts.run("yes\n", "rm", "1")
	cts.Require().NoError(err)
	cts.Contains(out, "deleted car 1")

	out, err = cts.run("", "rm", "--yes", "1")
	cts.ErrorIs(err, store.ErrUnknownCar)
	cts.NotContains(out, "deleted")
}

func (cts *CarsCmdTestSuite) TestRejectsBadArgs() {
	_, err := cts.run("", "show", "abc")
	cts.ErrorContains(err, `invalid car id "abc"`)
	_, err = cts.run("", "add", "--name", "Golf")
	cts.Error(err)
	_, err = cts.run("", "add",
		"--name", "Golf", "--brand", "VW", "--year", "2022",
		"--fuel", "Petrol", "--hp", "150",
	)
	cts.ErrorContains(err, "Petrol")
}

// lockedBuffer is a bytes.Buffer which may be written by the watch
// goroutine while the test reads it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// startWatch runs watch against handler until the returned stop
// function is called.
func startWatch(t *testing.T, handler http.HandlerFunc) (*lockedBuffer, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	cl, err := httpcl.NewPathClient(srv.URL)
	require.NoError(t, err)
	uc, err := carsuc.New(cl)
	require.NoError(t, err)
	s, err := store.New(uc)
	require.NoError(t, err)

	out := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch(ctx, s, "@every 1s", out) }()
	return out, func() {
		cancel()
		assert.NoError(t, <-done)
		srv.Close()
	}
}

func TestWatchSurvivesFailedReloads(t *testing.T) {
	var calls atomic.Int32
	out, stop := startWatch(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Golf","brand":"Volkswagen",`+
			`"year":2022,"fuelType":"Gasoline","horsepower":150}]`)
	})
	defer stop()
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Volkswagen")
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, 1, strings.Count(out.String(), "---"))
}

func TestWatchPrintsEmptyCatalog(t *testing.T) {
	out, stop := startWatch(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	defer stop()
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ID")
	}, 3*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "(version ")
}

func TestWatchRejectsBadSchedule(t *testing.T) {
	s, err := store.New(&carsuc.UseCase{})
	require.NoError(t, err)
	err = watch(context.Background(), s, "every now and then", io.Discard)
	assert.ErrorContains(t, err, "every now and then")
}
