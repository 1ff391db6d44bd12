// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"log/slog"
	"sync"
)

// Session owns a circuit and everything needed to edit and run it. All
// methods are safe for concurrent use; access to the arena is serialized.
//
// A host typically Posts gestures as they happen and calls Frame once per
// redraw, then renders from the query methods or View.
//
type Session struct {
	mu      sync.Mutex
	alloc   *IDAllocator
	arena   *Arena
	machine *Machine
	engine  *Engine
	queue   EventQueue
	policy  PortPolicy
	log     *slog.Logger
}

// NewSession returns a session with an empty circuit. A nil logger discards
// all output; a nil policy defaults to ToggleLightPolicy.
//
func NewSession(log *slog.Logger, policy PortPolicy) *Session {
	if log == nil {
		log = discard
	}
	if policy == nil {
		policy = ToggleLightPolicy
	}
	alloc := NewIDAllocator()
	return &Session{
		alloc:   alloc,
		arena:   NewArena(alloc),
		machine: NewMachine(log.With("component", "machine")),
		engine:  NewEngine(log.With("component", "engine")),
		policy:  policy,
		log:     log,
	}
}

// Post queues events for the next Frame.
//
func (s *Session) Post(evs ...Event) {
	s.queue.Push(evs...)
}

// Pending returns the number of queued events.
//
func (s *Session) Pending() int { return s.queue.Len() }

// Frame handles all queued events in order, then runs one engine step.
//
func (s *Session) Frame() {
	evs := s.queue.Drain()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range evs {
		s.machine.Handle(s.arena, ev)
	}
	s.engine.Step(s.arena)
}

// Steps returns the number of engine steps run so far.
//
func (s *Session) Steps() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Steps()
}

// MachineState returns the state of the wiring state machine.
//
func (s *Session) MachineState() (MachineState, ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// View calls fn with the session arena. fn must not modify the arena nor keep
// references to it or its elements.
//
func (s *Session) View(fn func(a *Arena)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.arena)
}

// Update calls fn with the session arena and returns its error.
//
func (s *Session) Update(fn func(a *Arena) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.arena)
}

// Place creates a gate from a template and returns its id.
//
func (s *Session) Place(t Template, pos Point) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.arena.Place(t, pos)
	if err != nil {
		return NoID, err
	}
	s.log.Debug("gate placed", "gate", g.ID, "kind", g.Type, "label", g.Label)
	return g.ID, nil
}

// Remove deletes an element and everything that references it.
//
func (s *Session) Remove(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Remove(id)
}

// Capture builds a chip from the given gates and chips (all of them if ids is
// empty) using the session port policy. The chip is not placed.
//
func (s *Session) Capture(name string, ids ...ID) (*Chip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Capture(s.arena, name, ids, s.policy)
}

// PlaceChip places a copy of c at pos and returns its id.
//
func (s *Session) PlaceChip(c *Chip, pos Point) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.arena.AddChip(c.Clone(), pos)
	if err != nil {
		return NoID, err
	}
	return n.ID, nil
}

// IDs returns the ids of all elements in increasing order.
//
func (s *Session) IDs() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.IDs()
}

// Signal returns the signal of an element.
//
func (s *Session) Signal(id ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Signal(id)
}

// Kind returns the element kind of id.
//
func (s *Session) Kind(id ID) (Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Kind(id)
}

// GateKind returns the gate kind of a gate or chip.
//
func (s *Session) GateKind(id ID) (GateKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.GateKind(id)
}

// Position returns the position of a gate, chip or wire.
//
func (s *Session) Position(id ID) (Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Position(id)
}

// FeedbackLoops returns the feedback loops of the session circuit.
//
func (s *Session) FeedbackLoops() [][]ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FeedbackLoops(s.arena)
}
