// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Log contains the logging settings.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, or error
	Format string `yaml:"format"` // text or json

	level slog.Level
}

// ValidateAndNormalize validates the log settings, filling the info
// level and text format by default.
func (l *Log) ValidateAndNormalize() error {
	if strings.TrimSpace(l.Level) == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	l.Level = strings.ToLower(l.level.String())
	switch l.Format = strings.ToLower(strings.TrimSpace(l.Format)); l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format %q", l.Format)
	}
	return nil
}

// NewLogger creates a logger which writes into w using the l settings.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup creates a logger, as NewLogger does, and installs it as the
// default slog logger which is used by the log package.
func (l Log) Setup(w io.Writer) *slog.Logger {
	logger := l.NewLogger(w)
	slog.SetDefault(logger)
	return logger
}
