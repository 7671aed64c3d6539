// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the catalog to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory
// items) and a series of functional options (for the optional items),
// so the config format may be versioned and kept intact while other
// layers can change freely.
//
// Settings are taken from the config file and may be overridden by
// environment variables, which may be kept in a .env file:
//
//	CATALOG_MODE            mode (development or production)
//	CATALOG_BASE_URL        client.base-url
//	CATALOG_ADDR            server.addr
//	CATALOG_STORAGE_DRIVER  storage.driver
//	CATALOG_DB_PATH         storage.path
//	DATABASE_URL            storage.database-url
//	REDIS_ADDR              storage.redis.addr
//	CATALOG_LOG_LEVEL       log.level
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/car-catalog/pkg/adapter/config/settings"
	"github.com/momeni/car-catalog/pkg/adapter/config/vers"
	"github.com/momeni/car-catalog/pkg/adapter/restful/httpcl"
	"github.com/momeni/car-catalog/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented
// with primitive fields or structs which are defined locally, not
// models from lower layers.
type Config struct {
	// Mode is the deployment mode, development or production.
	// It selects the addressing style of the client transport.
	Mode string `yaml:"mode"`

	Log     Log     `yaml:"log"`     // logging settings
	Server  Server  `yaml:"server"`  // wire service settings
	Storage Storage `yaml:"storage"` // server-side cars repository
	Client  Client  `yaml:"client"`  // client transport and store

	// Vers contains the configuration file version.
	Vers vers.Config `yaml:",inline"`

	mode httpcl.Mode
}

// Default returns a Config with the default settings which suits a
// local development setup: a JSON file catalog served on port 4000
// and a client which talks to it.
func Default() *Config {
	c := &Config{Vers: vers.Config{Versions: vers.Versions{Config: Version}}}
	if err := c.ValidateAndNormalize(); err != nil {
		panic(err) // defaults must be valid
	}
	return c
}

// LoadEnv loads the environment variables which are kept in the files
// (or the .env file when no file is given), without overwriting the
// variables which are set already. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %q: %w", f, err)
		}
	}
	return nil
}

// Load reads, validates, and normalizes the path configuration file
// and returns its settings as an instance of the Config struct.
// An empty path results in the Default settings. In both cases, the
// environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	if path == "" {
		c := &Config{Vers: vers.Config{Versions: vers.Versions{Config: Version}}}
		return c, c.finish()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse is like Load, but takes the config file contents. The config
// version is checked before decoding the rest of settings, and unknown
// settings are reported as errors.
func Parse(data []byte) (*Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err = v.Validate(Version); err != nil {
		return nil, fmt.Errorf("config version: %w", err)
	}
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return c, c.finish()
}

func (c *Config) finish() error {
	c.ApplyEnv()
	if err := c.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating configs: %w", err)
	}
	return nil
}

// ApplyEnv overrides the settings by their environment variables.
func (c *Config) ApplyEnv() {
	settings.FromEnv(&c.Mode, "CATALOG_MODE")
	settings.FromEnv(&c.Client.BaseURL, "CATALOG_BASE_URL")
	settings.FromEnv(&c.Server.Addr, "CATALOG_ADDR")
	settings.FromEnv(&c.Storage.Driver, "CATALOG_STORAGE_DRIVER")
	settings.FromEnv(&c.Storage.Path, "CATALOG_DB_PATH")
	settings.FromEnv(&c.Storage.DatabaseURL, "DATABASE_URL")
	settings.FromEnv(&c.Storage.Redis.Addr, "REDIS_ADDR")
	settings.FromEnv(&c.Log.Level, "CATALOG_LOG_LEVEL")
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces the
// missing settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	settings.DefaultString(&c.Mode, string(httpcl.ModeDevelopment))
	m, err := httpcl.ParseMode(c.Mode)
	if err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	c.mode, c.Mode = m, string(m)
	if err = c.Log.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err = c.Server.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err = c.Storage.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err = c.Client.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}

// DeploymentMode returns the validated deployment mode.
func (c *Config) DeploymentMode() httpcl.Mode {
	return c.mode
}

// Marshal serializes the c settings as a YAML document, which may be
// loaded again by Parse.
func (c *Config) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return b, nil
}
