// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command gatesim loads a saved circuit, replays scripted gestures on it and
// runs the simulation.
//
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/db47h/gatesim/internal/config"
	"github.com/db47h/gatesim/internal/logging"
	"github.com/db47h/gatesim/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// app holds the settings shared by all commands.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "gatesim",
		Short: "Logic gate circuit simulator",
		Long: `gatesim runs circuits of logic gates saved by the editor.

Circuits are read from and written to the configured store: a directory of
YAML files (one per gate and wire) or a SQLite database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ./"+config.DefaultFile+")")
	root.PersistentFlags().String("save-dir", "", "save directory")
	root.PersistentFlags().String("store", "", "store backend: dir or sqlite")
	root.PersistentFlags().String("log-level", "", "log level: info, debug or trace")

	root.AddCommand(
		newVersionCmd(),
		newRunCmd(a),
		newPrimsCmd(a),
		newLoopsCmd(a),
		newCaptureCmd(a),
		newChipsCmd(a),
	)
	return root
}

// init loads the configuration, applies command line overrides and sets up
// logging.
func (a *app) init(cmd *cobra.Command) error {
	var err error
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.cfg, err = config.LoadFromFile(path)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("save-dir"); v != "" {
		a.cfg.SaveDir = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		a.cfg.Store = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		a.cfg.Logging.Level = v
	}
	if err = a.cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	a.log = logging.NewLogger(a.cfg.Logging.Level, cmd.ErrOrStderr())
	return nil
}

// openStore opens the configured store backend.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	switch a.cfg.Store {
	case config.StoreSQLite:
		if err := os.MkdirAll(a.cfg.SaveDir, 0755); err != nil && a.cfg.SQLitePath == "" {
			return nil, errors.Wrap(err, "create save directory")
		}
		return store.NewSQLiteStore(ctx, a.cfg.DBPath())
	default:
		return store.NewDirStore(a.cfg.SaveDir)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gatesim version %s\n", version)
		},
	}
}
