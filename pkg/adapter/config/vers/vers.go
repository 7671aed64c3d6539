// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing of configuration files.
// Versions are parsed before the actual settings, so the settings
// format can be verified before trying to decode them. The format of
// keeping versions is less likely to change than the settings.
package vers

import (
	"fmt"

	"github.com/momeni/car-catalog/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of those documents which have a
// versioned format. It may be embedded with inline format in the
// config structs in order to indicate their versions.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file format version.
type Versions struct {
	Config model.SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration settings version which
// is stored in the `vc` Config instance may not be read by a program
// which supports the `supported` version. A missing (zero) version is
// reported as an error too.
func (vc *Config) Validate(supported model.SemVer) error {
	v := vc.Versions.Config
	if v == (model.SemVer{}) {
		return fmt.Errorf("missing versions.config, expected %s", supported)
	}
	return v.ReadableBy(supported)
}
