// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib provides a library of reusable circuits for gatesim.
//
// Each circuit is built by a Builder that places its gates and wires into an
// arena. The resulting Part lists the input ports to drive and the output
// ports to read.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package gatelib

import (
	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// A Part is a circuit placed in an arena.
//
type Part struct {
	Name  string
	In    []gs.ID // input ports, in pin order
	Out   []gs.ID // output ports, in pin order
	Gates []gs.ID // all gates of the part
}

// A Builder places a part in an arena at the given position.
//
type Builder func(a *gs.Arena, pos gs.Point) (Part, error)

// horizontal spacing between the gates of a part.
const spacing = 200

// builder keeps the first error and the gates placed so far. Once an error
// occurred, gate and sub return placeholders and nothing else is placed.
type builder struct {
	a    *gs.Arena
	pos  gs.Point
	part Part
	err  error
}

func newBuilder(a *gs.Arena, name string, pos gs.Point) *builder {
	return &builder{a: a, pos: pos, part: Part{Name: name}}
}

func (b *builder) next() gs.Point {
	return b.pos.Add(gs.Point{X: float64(len(b.part.Gates) * spacing)})
}

// gate places a primitive gate to the right of the previous one.
func (b *builder) gate(k gs.GateKind) *gs.Gate {
	if b.err == nil {
		g, err := b.a.Place(gs.TemplateFor(k), b.next())
		if err == nil {
			b.part.Gates = append(b.part.Gates, g.ID)
			return g
		}
		b.err = errors.Wrapf(err, "%s: place %v", b.part.Name, k)
	}
	return &gs.Gate{Ins: make([]gs.ID, 2), Outs: make([]gs.ID, 1)}
}

// sub places another part to the right of the previous gate.
func (b *builder) sub(f Builder) Part {
	if b.err == nil {
		p, err := f(b.a, b.next())
		if err == nil {
			b.part.Gates = append(b.part.Gates, p.Gates...)
			return p
		}
		b.err = errors.Wrap(err, b.part.Name)
	}
	return Part{In: make([]gs.ID, 3), Out: make([]gs.ID, 2)}
}

// wire connects output port out to input port in.
func (b *builder) wire(out, in gs.ID) {
	if b.err != nil {
		return
	}
	if _, err := b.a.Connect(out, in); err != nil {
		b.err = errors.Wrapf(err, "%s: wire %v to %v", b.part.Name, out, in)
	}
}

// fanout places a BUFFER gate so that one part input can feed several gate
// inputs.
func (b *builder) fanout() *gs.Gate {
	return b.gate(gs.Buffer)
}

func (b *builder) done(in, out []gs.ID) (Part, error) {
	if b.err != nil {
		return Part{}, b.err
	}
	b.part.In, b.part.Out = in, out
	return b.part, nil
}

// Gate returns a Builder for a single primitive gate.
//
func Gate(k gs.GateKind) Builder {
	return func(a *gs.Arena, pos gs.Point) (Part, error) {
		b := newBuilder(a, k.String(), pos)
		g := b.gate(k)
		return b.done(g.Ins, g.Outs)
	}
}

// Xnor places a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "XNOR", pos)
	xor := b.gate(gs.Xor)
	not := b.gate(gs.Not)
	b.wire(xor.Outs[0], not.Ins[0])
	return b.done(xor.Ins, not.Outs)
}

// NandNot places a NOT gate made of a NAND with both inputs tied.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func NandNot(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "NANDNOT", pos)
	in := b.fanout()
	nand := b.gate(gs.Nand)
	b.wire(in.Outs[0], nand.Ins[0])
	b.wire(in.Outs[0], nand.Ins[1])
	return b.done(in.Ins, nand.Outs)
}

// NandAnd places an AND gate made of two NAND gates.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func NandAnd(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "NANDAND", pos)
	nand := b.gate(gs.Nand)
	not := b.sub(NandNot)
	b.wire(nand.Outs[0], not.In[0])
	return b.done(nand.Ins, not.Out)
}
