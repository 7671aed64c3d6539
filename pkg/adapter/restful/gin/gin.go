// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic web framework, so the rest of the
// program may create an engine and its middlewares without depending
// on the framework details. Requests are logged using the default
// slog logger and each request is identified by an X-Request-Id.
package gin

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	ginslog "github.com/FabienMht/ginslog/logger"
	ginslogrecovery "github.com/FabienMht/ginslog/recovery"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/car-catalog/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine
type Context = gin.Context

// New instantiates a gin Engine which uses the given middlewares.
// Requests with an unsupported method for an existing path are
// answered by 405 (with an Allow header) instead of 404.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.HandleMethodNotAllowed = true
	e.Use(middlewares...)
	return e
}

// SetReleaseMode switches gin to its release (quiet) mode.
func SetReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}

// Logger logs each request using the default slog logger. The request
// ID is logged as request_id, matching the records of the log package,
// and the X-Request-Id response header is left to the RequestID
// middleware.
func Logger() HandlerFunc {
	return ginslog.New(
		slog.Default(),
		ginslog.WithoutRequestID(),
		ginslog.WithCustomFields(func(c *gin.Context) []slog.Attr {
			return []slog.Attr{
				slog.String("request_id", c.GetString("request_id")),
			}
		}),
	)
}

// Recovery recovers from panics, logs them using the default slog
// logger, and responds with 500.
func Recovery() HandlerFunc {
	return ginslogrecovery.New(slog.Default())
}

// RequestID makes sure that every request has an ID. The ID is taken
// from the X-Request-Id request header, or generated if it is missing.
// It is echoed in the response header and attached to the request
// context, so it is logged by the log package.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(log.RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(
			log.WithRequestID(c.Request.Context(), rid),
		)
		c.Writer.Header().Set(log.RequestIDHeader, rid)
		c.Next()
	}
}

// CORS allows browser based UIs which are served from the origins to
// call the catalog APIs. A "*" origin allows all origins.
func CORS(origins []string) HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", log.RequestIDHeader,
		},
		ExposeHeaders: []string{log.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
