// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/car-catalog/pkg/adapter/config"
	"github.com/momeni/car-catalog/pkg/adapter/db/seed"
	"github.com/momeni/car-catalog/pkg/adapter/restful/httpcl"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleConfig(t *testing.T) {
	c, err := config.Load("../../../configs/sample-config.yaml")
	require.NoError(t, err)
	assert.Equal(t, httpcl.ModeDevelopment, c.DeploymentMode())
	assert.Equal(t, ":4000", c.Server.Addr)
	assert.Equal(t, config.DriverJSONFile, c.Storage.Driver)
	assert.Equal(t, "db.json", c.Storage.Path)
	assert.Equal(t, 10*time.Second, c.Client.Timeout.D())
	assert.Equal(t, "@every 10s", c.Client.WatchSchedule)
}

func TestDefaults(t *testing.T) {
	c := config.Default()
	assert.Equal(t, "development", c.Mode)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, "/", c.Server.BasePath)
	assert.Equal(t, []string{"*"}, c.Server.CORSOrigins)
	assert.True(t, *c.Server.Logger)
	assert.Equal(t, "http://localhost:4000", c.Client.BaseURL)
	assert.Equal(t, "cars", c.Client.Resource)
	assert.Equal(t, 1, *c.Client.Burst)
	assert.Equal(t, config.Version, c.Vers.Versions.Config)
}

func TestParseNormalizes(t *testing.T) {
	c, err := config.Parse([]byte(`
versions:
  config: "1.0"
mode: prod
log:
  level: DEBUG
  format: JSON
server:
  base-path: /api/
storage:
  driver: redis
client:
  resource: /api/car-models/
  rate-limit: 5
  burst: 2
`))
	require.NoError(t, err)
	assert.Equal(t, httpcl.ModeProduction, c.DeploymentMode())
	assert.Equal(t, "production", c.Mode)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "/api", c.Server.BasePath)
	assert.Equal(t, "localhost:6379", c.Storage.Redis.Addr)
	assert.Equal(t, "catalog:", c.Storage.Redis.Prefix)
	assert.Equal(t, 5.0, *c.Client.RateLimit)
	assert.Len(t, c.Client.Options(), 3)
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"no version":       "mode: development\n",
		"newer minor":      "versions: {config: 1.1.0}\n",
		"other major":      "versions: {config: 2.0.0}\n",
		"unknown field":    "versions: {config: 1.0.0}\nmodes: dev\n",
		"bad mode":         "versions: {config: 1.0.0}\nmode: staging\n",
		"bad level":        "versions: {config: 1.0.0}\nlog: {level: loud}\n",
		"bad format":       "versions: {config: 1.0.0}\nlog: {format: xml}\n",
		"relative base":    "versions: {config: 1.0.0}\nserver: {base-path: api}\n",
		"bad driver":       "versions: {config: 1.0.0}\nstorage: {driver: mongo}\n",
		"postgres no url":  "versions: {config: 1.0.0}\nstorage: {driver: postgres}\n",
		"short timeout":    "versions: {config: 1.0.0}\nclient: {timeout: 1ms}\n",
		"bad duration":     "versions: {config: 1.0.0}\nclient: {timeout: soon}\n",
		"negative rate":    "versions: {config: 1.0.0}\nclient: {rate-limit: -1}\n",
		"bad schedule":     "versions: {config: 1.0.0}\nclient: {watch-schedule: sometimes}\n",
		"redis db too big": "versions: {config: 1.0.0}\nstorage: {driver: redis, redis: {db: 16}}\n",
	} {
		_, err := config.Parse([]byte(doc))
		assert.Error(t, err, name)
	}
	_, err := config.Parse([]byte("versions: {config: 3.0.0}\n"))
	assert.ErrorIs(t, err, model.ErrIncompatibleVersion)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_MODE", "production")
	t.Setenv("CATALOG_BASE_URL", "https://catalog.example.com")
	t.Setenv("CATALOG_ADDR", ":8080")
	t.Setenv("CATALOG_STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/catalog")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CATALOG_DB_PATH", "/data/db.json")
	t.Setenv("CATALOG_LOG_LEVEL", "warn")

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, httpcl.ModeProduction, c.DeploymentMode())
	assert.Equal(t, "https://catalog.example.com", c.Client.BaseURL)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, config.DriverPostgres, c.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/catalog", c.Storage.DatabaseURL)
	assert.Equal(t, "redis:6379", c.Storage.Redis.Addr)
	assert.Equal(t, "/data/db.json", c.Storage.Path)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath,
		[]byte("CATALOG_ADDR=:9090\nCATALOG_MODE=dev\n"), 0o600,
	))
	t.Setenv("CATALOG_MODE", "production") // not overwritten
	t.Setenv("CATALOG_ADDR", "")
	require.NoError(t, os.Unsetenv("CATALOG_ADDR"))

	require.NoError(t, config.LoadEnv(envPath, filepath.Join(dir, "missing.env")))
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, httpcl.ModeProduction, c.DeploymentMode())
}

func TestMarshalRoundTrip(t *testing.T) {
	c := config.Default()
	c.Storage.Driver = config.DriverSQLite
	require.NoError(t, c.ValidateAndNormalize())
	b, err := c.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(b), "config: 1.0.0")
	assert.Contains(t, string(b), "timeout: 10s")

	again, err := config.Parse(b)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestLogSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l := config.Log{Level: "warn", Format: "json"}
	require.NoError(t, l.ValidateAndNormalize())
	buf := &bytes.Buffer{}
	l.Setup(buf)
	slog.Info("hidden")
	slog.Warn("shown", slog.Int("n", 1))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()
	for _, s := range []config.Storage{
		{Driver: config.DriverJSONFile, Path: filepath.Join(t.TempDir(), "db.json")},
		{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "catalog.db")},
	} {
		require.NoError(t, s.ValidateAndNormalize())
		b, err := s.Open(ctx)
		require.NoError(t, err, s.Driver)
		require.NoError(t, b.Init(ctx))
		car, err := model.NewCar(seed.Cars()[0])
		require.NoError(t, err)
		_, err = b.Create(ctx, car)
		require.NoError(t, err)
		require.NoError(t, b.Recreate(ctx))
		cars, err := b.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, cars, s.Driver)
		assert.NoError(t, b.Close())
	}
}
