// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	gs "github.com/db47h/gatesim"
	"github.com/db47h/gatesim/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// load opens the store and loads the saved circuit into a new session. The
// returned map gives the session id of every saved id.
func (a *app) load(ctx context.Context) (*gs.Session, store.Store, map[gs.ID]gs.ID, error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	snap, err := st.Load(ctx)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	s := gs.NewSession(a.log, a.cfg.Policy())
	var m map[gs.ID]gs.ID
	err = s.Update(func(ar *gs.Arena) error {
		m, err = store.Import(ar, snap)
		return err
	})
	if err != nil {
		st.Close()
		return nil, nil, nil, errors.Wrap(err, "load circuit")
	}
	a.log.Info("circuit loaded", "gates", len(snap.Gates), "wires", len(snap.Wires), "chips", len(snap.Chips))
	return s, st, m, nil
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the saved circuit",
		Long: `Run loads the saved circuit, applies an optional gesture script and runs
the simulation for a number of frames. Each frame handles the gestures posted
for it, then steps the circuit once. The state of every gate is printed at
the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			frames, _ := cmd.Flags().GetInt("frames")
			if !cmd.Flags().Changed("frames") {
				frames = a.cfg.Engine.Frames
			}
			scriptPath, _ := cmd.Flags().GetString("script")
			save, _ := cmd.Flags().GetBool("save")
			lights, _ := cmd.Flags().GetBool("lights")

			s, st, m, err := a.load(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sc := new(script)
			if scriptPath != "" {
				if sc, err = loadScript(scriptPath); err != nil {
					return err
				}
			}
			r := &resolver{names: make(map[string]*gs.Gate), loaded: m}
			err = s.Update(func(ar *gs.Arena) error {
				for _, p := range sc.Place {
					g, err := ar.Place(p.template(), gs.Point{X: p.X, Y: p.Y})
					if err != nil {
						return errors.Wrapf(err, "place %s", p.Name)
					}
					if p.Name != "" {
						r.names[p.Name] = g
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			for f := 0; f < frames; f++ {
				evs, err := sc.events(f, r)
				if err != nil {
					return err
				}
				s.Post(evs...)
				s.Frame()
			}
			a.log.Debug("run done", "frames", frames, "steps", s.Steps())

			printGates(cmd.OutOrStdout(), s, lights)

			if save {
				var snap *store.Snapshot
				s.View(func(ar *gs.Arena) { snap = store.Export(ar) })
				if err = st.Save(ctx, snap); err != nil {
					return errors.Wrap(err, "save circuit")
				}
				a.log.Info("circuit saved", "gates", len(snap.Gates), "wires", len(snap.Wires))
			}
			return nil
		},
	}
	cmd.Flags().Int("frames", 10, "number of frames to run (default from config)")
	cmd.Flags().String("script", "", "YAML gesture script")
	cmd.Flags().Bool("save", false, "save the circuit after the run")
	cmd.Flags().Bool("lights", false, "only print LIGHT gates")
	return cmd
}

// printGates prints one line per gate: id, label and state.
func printGates(w io.Writer, s *gs.Session, lightsOnly bool) {
	s.View(func(ar *gs.Arena) {
		for _, g := range ar.Gates() {
			if lightsOnly && g.Type != gs.Light {
				continue
			}
			fmt.Fprintf(w, "%v\t%s\t%s\n", g.ID, g.Label, onOff(g.State))
		}
		for _, c := range ar.Chips() {
			if lightsOnly {
				continue
			}
			on, _ := ar.Signal(c.ID)
			fmt.Fprintf(w, "%v\t%s\t%s\n", c.ID, c.Name, onOff(on))
		}
	})
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func newPrimsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prims",
		Short: "List the gate templates",
		Long: `Prims lists the gate templates available for placement. With the directory
store, templates are read from the primitives file of the save directory if
it exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := gs.Primitives()
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			if ds, ok := st.(*store.DirStore); ok {
				if ts, err = ds.Templates(); err != nil {
					return err
				}
			}
			for _, t := range ts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\n", t.Label, t.Ins, t.Outs)
			}
			return nil
		},
	}
}

func newLoopsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "loops",
		Short: "List the feedback loops of the saved circuit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			loops := s.FeedbackLoops()
			if len(loops) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no feedback loops")
				return nil
			}
			for _, l := range loops {
				ids := make([]string, len(l))
				for i, id := range l {
					ids[i] = id.String()
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, " "))
			}
			return nil
		},
	}
}

func newCaptureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capture NAME",
		Short: "Save the whole circuit as a chip in the chip library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, st, _, err := a.load(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			c, err := s.Capture(args[0])
			if err != nil {
				return err
			}
			if err = st.SaveChip(ctx, store.ExportChip(c)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d gates, %d inputs, %d outputs\n", c.Name, len(c.Gates), len(c.Ins), len(c.Outs))
			return nil
		},
	}
}

func newChipsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chips",
		Short: "List the chip library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			cs, err := st.LoadChips(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range cs {
				if _, err := store.ImportChip(r); err != nil {
					a.log.Warn("bad chip", "name", r.Name, "err", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\n", r.Name, len(r.Ins), len(r.Outs))
			}
			return nil
		},
	}
}
