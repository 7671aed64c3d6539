// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the car
// catalog project. Commands are organized using the cobra library.
// The root command starts the catalog web service itself, the "db"
// sub-command initializes the server-side storage, and the "cars"
// sub-command drives the client store against a running service.
//
//	./catalog [serve] [-c /path/of/config.yaml]   # start web service
//	./catalog db init-dev [-c /path/of/config.yaml]
//	./catalog db init-prod [-c /path/of/config.yaml]
//	./catalog cars list|show ID|add|update ID|rm ID|watch
//	./catalog config                               # print settings
package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/momeni/car-catalog/pkg/adapter/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgPath  string
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "A car catalog service and its command line client",
	Long: `A car catalog service and its command line client.
The service keeps the catalog in a JSON file, SQLite, PostgreSQL, or
Redis storage and exposes it as the /cars REST resource. The client
commands load the catalog into an optimistic store, so changes are
shown immediately and rolled back if the service rejects them.

Settings are read from the config file (-c flag or CONFIG_FILE) and
may be overridden by environment variables, possibly kept in .env.`,
	RunE:          startWebServer,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. Commands are
// canceled by SIGINT or SIGTERM signals.
func Execute() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", "", "config file path")
	flags.StringSliceVar(
		&envFiles, "env-file", nil, "env files to load (default .env)",
	)
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindEnv("config", "CONFIG_FILE")
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args or the CONFIG_FILE environment variable. An empty path
// selects the default settings.
func fixConfigPath() {
	cfgPath = viper.GetString("config")
}

// loadConfig loads the env files and the config file and installs
// the configured logger as the default one.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, err
	}
	// CONFIG_FILE may come from the .env file too
	if cfgPath == "" {
		fixConfigPath()
	}
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	c.Log.Setup(os.Stderr)
	return c, nil
}
