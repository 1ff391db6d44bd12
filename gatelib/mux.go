// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import gs "github.com/db47h/gatesim"

// Mux places a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: If sel=0 then out=a else out=b.
//
func Mux(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "MUX", pos)
	sel := b.fanout()
	notSel := b.gate(gs.Not)
	and0 := b.gate(gs.And)
	and1 := b.gate(gs.And)
	or := b.gate(gs.Or)
	b.wire(sel.Outs[0], notSel.Ins[0])
	b.wire(notSel.Outs[0], and0.Ins[1])
	b.wire(sel.Outs[0], and1.Ins[1])
	b.wire(and0.Outs[0], or.Ins[0])
	b.wire(and1.Outs[0], or.Ins[1])
	return b.done([]gs.ID{and0.Ins[0], and1.Ins[0], sel.Ins[0]}, or.Outs)
}

// DMux places a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: If sel=0 then {a=in, b=0} else {a=0, b=in}
//
func DMux(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "DMUX", pos)
	in := b.fanout()
	sel := b.fanout()
	notSel := b.gate(gs.Not)
	and0 := b.gate(gs.And)
	and1 := b.gate(gs.And)
	b.wire(sel.Outs[0], notSel.Ins[0])
	b.wire(in.Outs[0], and0.Ins[0])
	b.wire(notSel.Outs[0], and0.Ins[1])
	b.wire(in.Outs[0], and1.Ins[0])
	b.wire(sel.Outs[0], and1.Ins[1])
	return b.done([]gs.ID{in.Ins[0], sel.Ins[0]}, []gs.ID{and0.Outs[0], and1.Outs[0]})
}
