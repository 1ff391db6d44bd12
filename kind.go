// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "strings"

// Kind is the variant of an Element.
//
type Kind int

// Element kinds.
//
const (
	KindGate Kind = iota
	KindWire
	KindInput
	KindOutput
	KindChip
)

var kindNames = [...]string{
	KindGate:   "gate",
	KindWire:   "wire",
	KindInput:  "input",
	KindOutput: "output",
	KindChip:   "chip",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// GateKind is the primitive kind of a Gate. Custom is used for gates that have
// no built-in semantics.
//
type GateKind int

// Gate kinds.
//
const (
	Custom GateKind = iota
	HiSignal
	LoSignal
	Pulse
	Toggle
	Light
	Buffer
	Not
	Or
	And
	Xor
	Nand
	Nor
)

var gateKinds = [...]struct {
	name    string
	ins     int
	outs    int
	clicked bool // state flipped by ClickGate
}{
	Custom:   {"CUSTOM", 0, 0, false},
	HiSignal: {"HI-SIGNAL", 0, 1, false},
	LoSignal: {"LO-SIGNAL", 0, 1, false},
	Pulse:    {"PULSE", 0, 1, true},
	Toggle:   {"TOGGLE", 0, 1, true},
	Light:    {"LIGHT", 1, 0, false},
	Buffer:   {"BUFFER", 1, 1, false},
	Not:      {"NOT", 1, 1, false},
	Or:       {"OR", 2, 1, false},
	And:      {"AND", 2, 1, false},
	Xor:      {"XOR", 2, 1, false},
	Nand:     {"NAND", 2, 1, false},
	Nor:      {"NOR", 2, 1, false},
}

func (k GateKind) valid() bool { return k >= 0 && int(k) < len(gateKinds) }

func (k GateKind) String() string {
	if !k.valid() {
		return "CUSTOM"
	}
	return gateKinds[k].name
}

// Arity returns the number of inputs and outputs of a primitive kind.
//
func (k GateKind) Arity() (ins, outs int) {
	if !k.valid() {
		return 0, 0
	}
	return gateKinds[k].ins, gateKinds[k].outs
}

// Clickable returns true for kinds whose state is flipped by a ClickGate
// event (TOGGLE and PULSE).
//
func (k GateKind) Clickable() bool {
	return k.valid() && gateKinds[k].clicked
}

// ParseGateKind returns the kind matching the given name, ignoring case and
// surrounding spaces. Unknown names map to Custom.
//
func ParseGateKind(name string) GateKind {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k, d := range gateKinds {
		if d.name == name {
			return GateKind(k)
		}
	}
	return Custom
}

// MarshalText implements encoding.TextMarshaler.
//
func (k GateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (k *GateKind) UnmarshalText(b []byte) error {
	*k = ParseGateKind(string(b))
	return nil
}
