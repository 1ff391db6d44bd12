// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"context"
	"log/slog"
)

// MachineState is the state of the wiring state machine.
//
type MachineState int

// Machine states.
//
const (
	Idle MachineState = iota
	Holding
)

func (s MachineState) String() string {
	if s == Holding {
		return "Holding"
	}
	return "Idle"
}

// Machine turns user gestures into wiring changes in an arena.
//
// In the Idle state, clicking an output starts a new wire from it and
// secondary-clicking a bound input picks its wire back up. While Holding a
// wire, clicking an output moves the wire's source there, clicking an unbound
// input binds the wire and secondary-clicking the wire's source deletes it.
// Clicking a TOGGLE or PULSE gate flips its state in either state.
//
// Gestures that do not apply are ignored: they leave the arena and the
// machine unchanged and are only logged.
//
type Machine struct {
	log   *slog.Logger
	state MachineState
	wire  ID
}

// NewMachine returns a machine in the Idle state. A nil logger discards all
// output.
//
func NewMachine(log *slog.Logger) *Machine {
	if log == nil {
		log = discard
	}
	return &Machine{log: log}
}

// State returns the machine state and the held wire, if any.
//
func (m *Machine) State() (MachineState, ID) {
	return m.state, m.wire
}

// Handle applies one event to the arena.
//
func (m *Machine) Handle(a *Arena, ev Event) {
	if m.state == Holding {
		if _, err := a.Wire(m.wire); err != nil {
			// the held wire was removed under us.
			m.log.Debug("held wire gone", "wire", m.wire, "err", err)
			m.idle()
		}
	}

	if ev.Type == ClickGate {
		m.clickGate(a, ev)
		return
	}

	switch m.state {
	case Idle:
		switch ev.Type {
		case ClickOutput:
			m.startWire(a, ev)
		case SecondaryClickInput:
			m.pickUp(a, ev)
		case PointerMove:
		default:
			m.reject(ev, "not holding a wire")
		}
	case Holding:
		switch ev.Type {
		case ClickOutput:
			m.reanchor(a, ev)
		case ClickInput:
			m.bind(a, ev)
		case SecondaryClickOutput:
			m.drop(a, ev)
		case PointerMove:
			if w, err := a.Wire(m.wire); err == nil {
				w.Line.P2 = ev.Pos
			}
		default:
			m.reject(ev, "holding a wire")
		}
	}
}

func (m *Machine) idle() {
	m.state, m.wire = Idle, NoID
}

func (m *Machine) hold(w ID) {
	m.state, m.wire = Holding, w
}

func (m *Machine) reject(ev Event, why string, args ...any) {
	m.log.Debug("gesture ignored", append([]any{"event", ev, "state", m.state, "reason", why}, args...)...)
}

func (m *Machine) applied(ev Event, args ...any) {
	m.log.Log(context.Background(), levelTrace, "gesture applied", append([]any{"event", ev, "state", m.state, "wire", m.wire}, args...)...)
}

func (m *Machine) startWire(a *Arena, ev Event) {
	pos, err := a.PortPosition(ev.Target)
	if err != nil {
		pos = ev.Pos
	}
	w, err := a.NewWire(ev.Target, pos)
	if err != nil {
		m.reject(ev, "cannot start wire", "err", err)
		return
	}
	m.hold(w.ID)
	m.applied(ev)
}

func (m *Machine) reanchor(a *Arena, ev Event) {
	if err := a.Reanchor(m.wire, ev.Target); err != nil {
		m.reject(ev, "cannot move wire source", "err", err)
		return
	}
	m.applied(ev)
}

func (m *Machine) bind(a *Arena, ev Event) {
	if err := a.Bind(m.wire, ev.Target); err != nil {
		m.reject(ev, "cannot bind wire", "err", err)
		return
	}
	m.applied(ev)
	m.idle()
}

func (m *Machine) pickUp(a *Arena, ev Event) {
	in, err := a.Input(ev.Target)
	if err != nil {
		m.reject(ev, "not an input", "err", err)
		return
	}
	if in.Wire == NoID {
		m.reject(ev, "input not bound")
		return
	}
	w, err := a.Detach(ev.Target)
	if err != nil {
		m.reject(ev, "cannot detach wire", "err", err)
		return
	}
	m.hold(w)
	m.applied(ev)
}

func (m *Machine) drop(a *Arena, ev Event) {
	w, err := a.Wire(m.wire)
	if err != nil {
		m.reject(ev, "no wire", "err", err)
		return
	}
	if w.Source != ev.Target {
		m.reject(ev, "not the wire source")
		return
	}
	if err = a.Remove(w.ID); err != nil {
		m.reject(ev, "cannot remove wire", "err", err)
		return
	}
	m.applied(ev)
	m.idle()
}

func (m *Machine) clickGate(a *Arena, ev Event) {
	g, err := a.Gate(ev.Target)
	if err != nil {
		m.reject(ev, "not a gate", "err", err)
		return
	}
	if !g.Type.Clickable() {
		m.reject(ev, "gate kind not clickable", "kind", g.Type)
		return
	}
	g.State = !g.State
	m.applied(ev, "gate_state", g.State)
}
