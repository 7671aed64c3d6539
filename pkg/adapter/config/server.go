// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/momeni/car-catalog/pkg/adapter/config/settings"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin"
)

// Server contains the wire service settings. Boolean and duration
// fields are pointers, so missing settings can be detected and filled
// by their default values.
type Server struct {
	Addr     string `yaml:"addr"`      // listening address, like :4000
	BasePath string `yaml:"base-path"` // prefix of the cars resource

	// CORSOrigins lists the origins of browser UIs which may call the
	// catalog. A "*" item allows all origins.
	CORSOrigins []string `yaml:"cors-origins"`

	Logger   *bool `yaml:"logger"`   // Whether to log the requests
	Recovery *bool `yaml:"recovery"` // Whether to recover from panics

	ReadHeaderTimeout *settings.Duration `yaml:"read-header-timeout"`
	ShutdownTimeout   *settings.Duration `yaml:"shutdown-timeout"`
}

// ValidateAndNormalize validates the server settings and fills their
// defaults.
func (s *Server) ValidateAndNormalize() error {
	settings.DefaultString(&s.Addr, ":4000")
	settings.DefaultString(&s.BasePath, "/")
	if !strings.HasPrefix(s.BasePath, "/") {
		return fmt.Errorf("base-path %q must be absolute", s.BasePath)
	}
	s.BasePath = path.Clean(s.BasePath)
	if s.CORSOrigins == nil {
		s.CORSOrigins = []string{"*"}
	}
	settings.Default(&s.Logger, true)
	settings.Default(&s.Recovery, true)
	settings.Default(&s.ReadHeaderTimeout, settings.Duration(10*time.Second))
	settings.Default(&s.ShutdownTimeout, settings.Duration(10*time.Second))
	if err := settings.VerifyRange(
		s.ShutdownTimeout, 0, settings.Duration(time.Minute),
	); err != nil {
		return fmt.Errorf("shutdown-timeout: %w", err)
	}
	return nil
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `s` settings. The request ID middleware is always registered.
func (s Server) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 4)
	middlewares = append(middlewares, gin.RequestID())
	if *s.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *s.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if len(s.CORSOrigins) > 0 {
		middlewares = append(middlewares, gin.CORS(s.CORSOrigins))
	}
	return gin.New(middlewares...)
}

// NewHTTPServer wraps h in an http.Server which listens on s.Addr.
func (s Server) NewHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Addr:              s.Addr,
		Handler:           h,
		ReadHeaderTimeout: s.ReadHeaderTimeout.D(),
	}
}
