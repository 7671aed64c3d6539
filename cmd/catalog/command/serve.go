// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/momeni/car-catalog/pkg/adapter/restful/gin"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog web service (the default command)",
	RunE:  startWebServer,
	Args:  cobra.NoArgs,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := c.Storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Warn(ctx, "closing storage", log.Err("err", err))
		}
	}()
	if err = b.Init(ctx); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	if c.Log.Level != "debug" {
		gin.SetReleaseMode()
	}
	var e *gin.Engine = c.Server.NewEngine()
	if err = routes.Register(e, b, c.Server.BasePath); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := c.Server.NewHTTPServer(e)
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "catalog is listening",
			slog.String("addr", srv.Addr),
			slog.String("storage", b.Driver),
		)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	sctx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), c.Server.ShutdownTimeout.D(),
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
