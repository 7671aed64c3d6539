// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/momeni/car-catalog/pkg/core/log"
	"github.com/momeni/car-catalog/pkg/core/model"
	"github.com/momeni/car-catalog/pkg/core/store"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// newCarsCmd creates the cars command and its sub-commands. They are
// created by a function, instead of package variables, so each command
// tree has its own flag values.
func newCarsCmd() *cobra.Command {
	carsCmd := &cobra.Command{
		Use:   "cars",
		Short: "Browse and edit the catalog of a running service",
		Long: `Browse and edit the catalog of a running service.
The service is addressed by the client.base-url setting and the mode
setting selects its addressing style (/cars/:id or /cars?id=N).`,
	}
	carsCmd.AddCommand(
		newListCmd(), newShowCmd(), newAddCmd(),
		newUpdateCmd(), newRmCmd(), newWatchCmd(),
	)
	return carsCmd
}

type session struct {
	store    *store.Store
	schedule string
}

func openSession() (*session, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	uc, err := c.Client.NewUseCase(c.DeploymentMode())
	if err != nil {
		return nil, err
	}
	s, err := store.New(uc)
	if err != nil {
		return nil, err
	}
	return &session{store: s, schedule: c.Client.WatchSchedule}, nil
}

// loaded opens a session and loads the catalog into its store.
func loaded(ctx context.Context) (*session, error) {
	ss, err := openSession()
	if err != nil {
		return nil, err
	}
	if err = ss.store.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading cars: %w", err)
	}
	return ss, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid car id %q", s)
	}
	return id, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ss, err := loaded(cmd.Context())
			if err != nil {
				return err
			}
			return printCars(cmd.OutOrStdout(), ss.store.State().Cars)
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the details of one car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ss, err := loaded(cmd.Context())
			if err != nil {
				return err
			}
			if err = ss.store.SelectCar(id); err != nil {
				return fmt.Errorf("car %d: %w", id, err)
			}
			return printCar(cmd.OutOrStdout(), ss.store.State().Selected)
		},
	}
}

type carFlags struct {
	name, brand, fuel string
	year              int
	hp                float64
}

func (cf *carFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cf.name, "name", "", "model name")
	f.StringVar(&cf.brand, "brand", "", "brand name")
	f.IntVar(&cf.year, "year", 0, "model year")
	f.StringVar(&cf.fuel, "fuel", "", "Gasoline, Diesel, Electric, or Hybrid")
	f.Float64Var(&cf.hp, "hp", 0, "horsepower (CV)")
}

func newAddCmd() *cobra.Command {
	cf := &carFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new car",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ft, err := model.ParseFuelType(cf.fuel)
			if err != nil {
				return fmt.Errorf("fuel %q: %w", cf.fuel, err)
			}
			ss, err := openSession()
			if err != nil {
				return err
			}
			ss.store.OpenForm()
			defer ss.store.CloseForm()
			car, err := ss.store.Create(cmd.Context(), model.CarParams{
				Name:       cf.name,
				Brand:      cf.brand,
				Year:       cf.year,
				FuelType:   ft,
				Horsepower: cf.hp,
			})
			if err != nil {
				return fmt.Errorf("adding car: %w", err)
			}
			return printCar(cmd.OutOrStdout(), car)
		},
	}
	cf.register(cmd)
	for _, name := range []string{"name", "brand", "year", "fuel", "hp"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newUpdateCmd() *cobra.Command {
	cf := &carFlags{}
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of a car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ss, err := loaded(cmd.Context())
			if err != nil {
				return err
			}
			car, ok := ss.store.State().Find(id)
			if !ok {
				return fmt.Errorf("car %d: %w", id, store.ErrUnknownCar)
			}
			if car, err = cf.apply(cmd, car); err != nil {
				return err
			}
			ss.store.OpenForm()
			defer ss.store.CloseForm()
			if car, err = ss.store.Save(cmd.Context(), car); err != nil {
				return fmt.Errorf("updating car %d: %w", id, err)
			}
			return printCar(cmd.OutOrStdout(), car)
		},
	}
	cf.register(cmd)
	return cmd
}

// apply changes the fields of car which their flags are passed.
func (cf *carFlags) apply(cmd *cobra.Command, car *model.Car) (*model.Car, error) {
	changed := cmd.Flags().Changed
	var err error
	if changed("name") {
		if car, err = car.Rename(cf.name); err != nil {
			return nil, err
		}
	}
	if changed("brand") {
		if car, err = car.Rebrand(cf.brand); err != nil {
			return nil, err
		}
	}
	if changed("year") {
		if car, err = car.WithYear(cf.year); err != nil {
			return nil, err
		}
	}
	if changed("fuel") {
		ft, err := model.ParseFuelType(cf.fuel)
		if err != nil {
			return nil, fmt.Errorf("fuel %q: %w", cf.fuel, err)
		}
		if car, err = car.WithFuelType(ft); err != nil {
			return nil, err
		}
	}
	if changed("hp") {
		if car, err = car.WithHorsepower(cf.hp); err != nil {
			return nil, err
		}
	}
	return car, nil
}

func newRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a car after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ss, err := loaded(ctx)
			if err != nil {
				return err
			}
			car, ok := ss.store.State().Find(id)
			if !ok {
				return fmt.Errorf("car %d: %w", id, store.ErrUnknownCar)
			}
			var rmErr error
			canceled := false
			ss.store.ShowConfirmDialog(
				fmt.Sprintf("Delete %s %s (#%d)?", car.Brand(), car.Name(), id),
				func() { rmErr = ss.store.Remove(ctx, id) },
				func() { canceled = true },
			)
			answer := yes
			if !answer {
				msg := ss.store.State().Confirm.Message
				answer, err = ask(cmd.InOrStdin(), cmd.OutOrStdout(), msg)
				if err != nil {
					ss.store.HideConfirmDialog()
					return err
				}
			}
			ss.store.ResolveConfirm(answer)
			switch {
			case canceled:
				fmt.Fprintln(cmd.OutOrStdout(), "canceled")
			case rmErr != nil:
				return fmt.Errorf("deleting car %d: %w", id, rmErr)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "deleted car %d\n", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func ask(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload and print the catalog periodically",
		Long: `Reload and print the catalog periodically, based on the
client.watch-schedule setting, until interrupted. The catalog is only
printed when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ss, err := openSession()
			if err != nil {
				return err
			}
			return watch(cmd.Context(), ss.store, ss.schedule, cmd.OutOrStdout())
		},
	}
}

// watch loads the catalog now and on every tick of the schedule cron
// spec until ctx is canceled. The catalog is printed after the first
// successful load and whenever a later load changes it. Failed loads
// are logged and do not stop the watch.
func watch(
	ctx context.Context, s *store.Store, schedule string, out io.Writer,
) error {
	var mu sync.Mutex
	printed := false
	var last []*model.Car
	reload := func() {
		if err := s.Load(ctx); err != nil {
			log.Warn(ctx, "reloading cars", log.Err("err", err))
			return
		}
		st := s.State()
		mu.Lock()
		defer mu.Unlock()
		if printed && sameCars(last, st.Cars) {
			return
		}
		printed, last = true, st.Cars
		fmt.Fprintf(out, "--- %s (version %d)\n",
			time.Now().Format(time.TimeOnly), st.Version,
		)
		_ = printCars(out, st.Cars)
	}
	cr := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := cr.AddFunc(schedule, reload); err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}
	log.Info(ctx, "watching cars", slog.String("schedule", schedule))
	reload()
	cr.Start()
	<-ctx.Done()
	<-cr.Stop().Done()
	return nil
}

func sameCars(a, b []*model.Car) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func printCars(w io.Writer, cars []*model.Car) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tYEAR\tFUEL\tPOWER")
	for _, c := range cars {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			c.ID(), c.Name(), c.Brand(), c.Year(), c.FuelType(), c.Horsepower(),
		)
	}
	return tw.Flush()
}

func printCar(w io.Writer, c *model.Car) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%d\n", c.ID())
	fmt.Fprintf(tw, "name:\t%s\n", c.Name())
	fmt.Fprintf(tw, "brand:\t%s\n", c.Brand())
	fmt.Fprintf(tw, "year:\t%d (%d years old)\n", c.Year(), c.Age(time.Now()))
	fmt.Fprintf(tw, "fuel:\t%s\n", c.FuelType())
	fmt.Fprintf(tw, "power:\t%s (%.2f kW)\n", c.Horsepower(), c.Horsepower().Kilowatts())
	fmt.Fprintf(tw, "electric:\t%t\n", c.IsFullyElectric())
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(newCarsCmd())
}
