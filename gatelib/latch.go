// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import gs "github.com/db47h/gatesim"

// SRLatch places a set/reset latch made of two cross-coupled NOR gates.
//
//	Inputs: s, r
//	Outputs: q, nq
//	Function: s=1 sets q, r=1 resets q, s=r=0 keeps q.
//
// Because of the feedback loop, q takes a few steps to settle after a change
// of s or r. The latch oscillates until it is first set or reset, and again
// when s and r are released at the same time.
//
func SRLatch(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "SRLATCH", pos)
	q := b.gate(gs.Nor)
	nq := b.gate(gs.Nor)
	b.wire(nq.Outs[0], q.Ins[1])
	b.wire(q.Outs[0], nq.Ins[1])
	return b.done([]gs.ID{nq.Ins[0], q.Ins[0]}, []gs.ID{q.Outs[0], nq.Outs[0]})
}

// DLatch places a gated data latch made of NAND gates.
//
//	Inputs: d, en
//	Outputs: q, nq
//	Function: while en=1, q follows d. When en=0, q keeps its last value.
//
// Like SRLatch, the latch only settles once it has been enabled.
//
func DLatch(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "DLATCH", pos)
	d := b.fanout()
	en := b.fanout()
	nd := b.gate(gs.Not)
	set := b.gate(gs.Nand)
	reset := b.gate(gs.Nand)
	q := b.gate(gs.Nand)
	nq := b.gate(gs.Nand)
	b.wire(d.Outs[0], set.Ins[0])
	b.wire(d.Outs[0], nd.Ins[0])
	b.wire(nd.Outs[0], reset.Ins[0])
	b.wire(en.Outs[0], set.Ins[1])
	b.wire(en.Outs[0], reset.Ins[1])
	b.wire(set.Outs[0], q.Ins[0])
	b.wire(reset.Outs[0], nq.Ins[0])
	b.wire(nq.Outs[0], q.Ins[1])
	b.wire(q.Outs[0], nq.Ins[1])
	return b.done([]gs.ID{d.Ins[0], en.Ins[0]}, []gs.ID{q.Outs[0], nq.Outs[0]})
}
