// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// HalfAdder places a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b), c = msb(a + b)
//
func HalfAdder(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "HALFADDER", pos)
	ia := b.fanout()
	ib := b.fanout()
	xor := b.gate(gs.Xor)
	and := b.gate(gs.And)
	b.wire(ia.Outs[0], xor.Ins[0])
	b.wire(ib.Outs[0], xor.Ins[1])
	b.wire(ia.Outs[0], and.Ins[0])
	b.wire(ib.Outs[0], and.Ins[1])
	return b.done([]gs.ID{ia.Ins[0], ib.Ins[0]}, []gs.ID{xor.Outs[0], and.Outs[0]})
}

// FullAdder places a full adder.
//
//	Inputs: a, b, c
//	Outputs: s, c
//	Function: s = lsb(a + b + c), c = msb(a + b + c)
//
func FullAdder(a *gs.Arena, pos gs.Point) (Part, error) {
	b := newBuilder(a, "FULLADDER", pos)
	h0 := b.sub(HalfAdder)
	h1 := b.sub(HalfAdder)
	or := b.gate(gs.Or)
	b.wire(h0.Out[0], h1.In[0])
	b.wire(h0.Out[1], or.Ins[0])
	b.wire(h1.Out[1], or.Ins[1])
	return b.done([]gs.ID{h0.In[0], h0.In[1], h1.In[1]}, []gs.ID{h1.Out[0], or.Outs[0]})
}

// AdderN returns a builder for a ripple carry adder of the given width.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//
// Bit 0 is the least significant bit of each bus.
//
func AdderN(bits int) Builder {
	return func(a *gs.Arena, pos gs.Point) (Part, error) {
		b := newBuilder(a, "ADDER"+strconv.Itoa(bits), pos)
		if bits < 1 {
			return Part{}, errors.Errorf("%s: invalid width %d", b.part.Name, bits)
		}
		ins := make([]gs.ID, 2*bits)
		outs := make([]gs.ID, bits+1)
		h := b.sub(HalfAdder)
		ins[0], ins[bits], outs[0] = h.In[0], h.In[1], h.Out[0]
		carry := h.Out[1]
		for i := 1; i < bits; i++ {
			f := b.sub(FullAdder)
			b.wire(carry, f.In[2])
			ins[i], ins[bits+i], outs[i] = f.In[0], f.In[1], f.Out[0]
			carry = f.Out[1]
		}
		outs[bits] = carry
		return b.done(ins, outs)
	}
}
