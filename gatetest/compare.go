// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatetest provides utility functions for testing circuits.
//
package gatetest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	gs "github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
)

// Steps is the number of engine steps run after each input change before
// outputs are read. It must be larger than the longest gate path of the
// circuits under test, including the input TOGGLE and output LIGHT gates.
//
var Steps = 16

// A Rig drives a part with TOGGLE gates wired to its inputs and reads it with
// LIGHT gates wired to its outputs.
//
type Rig struct {
	Arena  *gs.Arena
	Engine *gs.Engine
	Part   gatelib.Part

	toggles []*gs.Gate
	lights  []*gs.Gate
}

// NewRig builds a part in a new arena and wires it to toggles and lights.
//
func NewRig(b gatelib.Builder) (*Rig, error) {
	a := gs.NewArena(nil)
	p, err := b(a, gs.Point{X: 200})
	if err != nil {
		return nil, err
	}
	r := &Rig{Arena: a, Engine: gs.NewEngine(nil), Part: p}
	for i, id := range p.In {
		g, err := a.Place(gs.TemplateFor(gs.Toggle), gs.Point{Y: float64(i * 120)})
		if err != nil {
			return nil, err
		}
		if _, err = a.Connect(g.Outs[0], id); err != nil {
			return nil, err
		}
		r.toggles = append(r.toggles, g)
	}
	for i, id := range p.Out {
		g, err := a.Place(gs.TemplateFor(gs.Light), gs.Point{X: -200, Y: float64(i * 120)})
		if err != nil {
			return nil, err
		}
		if _, err = a.Connect(id, g.Ins[0]); err != nil {
			return nil, err
		}
		r.lights = append(r.lights, g)
	}
	return r, nil
}

// Set sets the state of the input toggles.
//
func (r *Rig) Set(ins ...bool) {
	for i, v := range ins {
		r.toggles[i].State = v
	}
}

// Settle runs n engine steps.
//
func (r *Rig) Settle(n int) {
	for ; n > 0; n-- {
		r.Engine.Step(r.Arena)
	}
}

// SetInt sets bits input toggles starting at first to the binary value of v.
// Toggle first is the least significant bit.
//
func (r *Rig) SetInt(first, bits int, v int64) {
	for bit := 0; bit < bits; bit++ {
		r.toggles[first+bit].State = v&(1<<uint(bit)) != 0
	}
}

// Int returns the value of bits output lights starting at first. Light first
// is the least significant bit.
//
func (r *Rig) Int(first, bits int) int64 {
	var v int64
	for bit := 0; bit < bits; bit++ {
		if r.lights[first+bit].State {
			v |= 1 << uint(bit)
		}
	}
	return v
}

// Outputs returns the state of the output lights.
//
func (r *Rig) Outputs() []bool {
	outs := make([]bool, len(r.lights))
	for i, l := range r.lights {
		outs[i] = l.State
	}
	return outs
}

// TruthTable checks a part against a truth table. result[o][i] is the expected
// value of output o for input combination i, where the first input is the
// most significant bit of i.
//
func TruthTable(t *testing.T, name string, b gatelib.Builder, result [][]bool) {
	t.Helper()
	r, err := NewRig(b)
	if err != nil {
		t.Fatal(err)
	}
	inputs := make([]bool, len(r.toggles))
	tot := 1 << uint(len(inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = (i & (1 << uint(bit))) != 0
		}
		r.Set(inputs...)
		r.Settle(Steps)
		for o, out := range r.Outputs() {
			if exp := result[o][i]; exp != out {
				t.Errorf("%s %v: output %d = %v, got %v", name, inputs, o, exp, out)
			}
		}
	}
}

func randBool(rnd *rand.Rand) bool {
	return rnd.Int63()&(1<<62) != 0
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same number of inputs and outputs.
//
func ComparePart(t *testing.T, part1, part2 gatelib.Builder) {
	t.Helper()

	r1, err := NewRig(part1)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := NewRig(part2)
	if err != nil {
		t.Fatal(err)
	}
	if len(r1.toggles) != len(r2.toggles) {
		t.Fatalf("%s has %d inputs, %s has %d", r1.Part.Name, len(r1.toggles), r2.Part.Name, len(r2.toggles))
	}
	if len(r1.lights) != len(r2.lights) {
		t.Fatalf("%s has %d outputs, %s has %d", r1.Part.Name, len(r1.lights), r2.Part.Name, len(r2.lights))
	}

	inputs := make([]bool, len(r1.toggles))
	errString := func(o int, ex, got bool) string {
		var b strings.Builder
		for i, v := range inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "in%d=%v", i, v)
		}
		return fmt.Sprintf("\nExpected %s => out%d=%v\nGot %v", b.String(), o, ex, got)
	}
	check := func() {
		t.Helper()
		r1.Set(inputs...)
		r2.Set(inputs...)
		r1.Settle(Steps)
		r2.Settle(Steps)
		o2 := r2.Outputs()
		for o, out := range r1.Outputs() {
			if out != o2[o] {
				t.Fatal(errString(o, out, o2[o]))
			}
		}
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	iter := len(inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()

	// try all 0, then all 1
	check()
	for in := range inputs {
		inputs[in] = true
	}
	check()

	for i := 0; i < iter; i++ {
		for in := range inputs {
			inputs[in] = randBool(rnd)
		}
		check()
	}

	t.Logf("%d + %d elements. %d steps in %v", r1.Arena.Len(), r2.Arena.Len(), r1.Engine.Steps(), time.Since(start))
}
