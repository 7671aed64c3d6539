// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"log/slog"

	"github.com/momeni/car-catalog/pkg/adapter/db/seed"
	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/usecase/inventoryuc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Storage management actions",
	Long: `Storage management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Recreate the storage and fill it with sample cars",
	Long: `Recreate the storage and fill it with sample cars.
All existing cars are removed, so IDs start from one again.
The storage driver and its connection information are read from the
config file.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Create the storage schema without any cars",
	Long: `Create the storage schema without any cars.
Existing cars are kept intact, so it is safe to run it again.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initDev(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := c.Storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer b.Close()
	if err = b.Recreate(ctx); err != nil {
		return fmt.Errorf("recreating storage: %w", err)
	}
	inv, err := inventoryuc.New(b)
	if err != nil {
		return err
	}
	n, err := inv.Seed(ctx, seed.Cars())
	if err != nil {
		return fmt.Errorf("seeding storage: %w", err)
	}
	log.Info(ctx, "storage is initialized with dev data",
		slog.String("driver", b.Driver), slog.Int("cars", n),
	)
	return nil
}

func initProd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := c.Storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer b.Close()
	if err = b.Init(ctx); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	log.Info(ctx, "storage is initialized", slog.String("driver", b.Driver))
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd, initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
