// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"context"
	"log/slog"
)

// Engine advances the circuit in an arena one step at a time.
//
// A step is a single pass over all gates, not a search for a fixpoint: a
// signal crosses exactly one gate per step and feedback loops see their own
// output one step late.
//
type Engine struct {
	log     *slog.Logger
	steps   uint64
	skipped int
}

// NewEngine returns a new engine. A nil logger discards all output.
//
func NewEngine(log *slog.Logger) *Engine {
	if log == nil {
		log = discard
	}
	return &Engine{log: log}
}

// Steps returns the number of steps run so far.
//
func (e *Engine) Steps() uint64 { return e.steps }

// Skipped returns the number of gates that failed to evaluate during the last
// step.
//
func (e *Engine) Skipped() int { return e.skipped }

// Step runs one evaluation cycle over the arena:
//
//	1. snapshot the signal of every input
//	2. evaluate every gate against the snapshot of its own inputs
//	3. write gate outputs to output ports and their wires
//	4. set every input to the signal of its wire, or false if it has none
//
// A gate that fails to evaluate is skipped and contributes no outputs for this
// step.
//
func (e *Engine) Step(a *Arena) {
	// snapshot inputs
	snap := make(map[ID]bool)
	for id, el := range a.elems {
		if in, ok := el.(*Input); ok {
			snap[id] = in.Signal
		}
	}

	// evaluate gates
	e.skipped = 0
	next := make(map[ID]bool)
	var ins []bool
	for _, el := range a.elems {
		g, ok := el.(*Gate)
		if !ok {
			continue
		}
		ins = ins[:0]
		for _, id := range g.Ins {
			ins = append(ins, snap[id])
		}
		outs, state, err := Evaluate(g.Type, ins, g.State)
		if err != nil {
			e.skipped++
			e.log.Debug("gate skipped", "gate", g.ID, "kind", g.Type, "err", err)
			continue
		}
		g.State = state
		for i, s := range outs {
			if i < len(g.Outs) {
				next[g.Outs[i]] = s
			}
		}
	}

	// propagate to wires
	fed := make(map[ID]bool)
	for id, s := range next {
		out, err := a.Output(id)
		if err != nil {
			continue
		}
		out.Signal = s
		for _, wid := range out.Wires {
			w, err := a.Wire(wid)
			if err != nil {
				continue
			}
			w.Signal = s
			if w.Dest != NoID {
				fed[w.Dest] = s
			}
		}
	}

	// apply to inputs. Unfed inputs go low.
	for id, el := range a.elems {
		if in, ok := el.(*Input); ok {
			in.Signal = fed[id]
		}
	}

	e.steps++
	e.log.Log(context.Background(), levelTrace, "step", "n", e.steps, "gates", len(next), "skipped", e.skipped)
}
