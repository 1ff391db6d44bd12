// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultGateSize is the size given to gates placed from a template.
//
var DefaultGateSize = Point{150, 110}

// A Template is a gate blueprint, as shown in the editor's palette.
//
type Template struct {
	Label string
	Type  GateKind
	Ins   int
	Outs  int
}

// TemplateFor returns the template of a primitive kind, with its declared
// arity.
//
func TemplateFor(k GateKind) Template {
	ins, outs := k.Arity()
	return Template{Label: k.String(), Type: k, Ins: ins, Outs: outs}
}

// Primitives returns a template for every built-in primitive kind.
//
func Primitives() []Template {
	ts := make([]Template, 0, len(gateKinds)-1)
	for k := range gateKinds {
		if GateKind(k) == Custom {
			continue
		}
		ts = append(ts, TemplateFor(GateKind(k)))
	}
	return ts
}

// ParseTemplates reads a template list, one template per line in the form
//
//	name:ins:outs
//
// Blank lines and lines with an invalid port count are skipped. Names that are
// not a primitive kind give Custom templates.
//
func ParseTemplates(r io.Reader) ([]Template, error) {
	var ts []Template
	s := bufio.NewScanner(r)
	for s.Scan() {
		t, ok := parseTemplate(s.Text())
		if ok {
			ts = append(ts, t)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read templates")
	}
	return ts, nil
}

func parseTemplate(l string) (Template, bool) {
	f := strings.Split(strings.TrimSpace(l), ":")
	if len(f) != 3 || f[0] == "" {
		return Template{}, false
	}
	ins, err := strconv.Atoi(strings.TrimSpace(f[1]))
	if err != nil || ins < 0 {
		return Template{}, false
	}
	outs, err := strconv.Atoi(strings.TrimSpace(f[2]))
	if err != nil || outs < 0 {
		return Template{}, false
	}
	label := strings.TrimSpace(f[0])
	return Template{Label: label, Type: ParseGateKind(label), Ins: ins, Outs: outs}, true
}
