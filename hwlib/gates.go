// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	hw "github.com/db47h/hwserial"
)

var notGate = hw.PartSpec{Name: "NOT", Inputs: hw.Inputs{pIn}, Outputs: hw.Outputs{pOut},
	Mount: func(s *hw.Socket) []hw.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []hw.Component{
			func(c *hw.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate. It is typically used to adapt an active low signal
// like a chip select or a reset line.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hw.Part {
	return notGate.NewPart(w)
}

// other gates
type gate func(a, b bool) bool

func (g gate) mount(s *hw.Socket) []hw.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []hw.Component{
		func(c *hw.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn func(a, b bool) bool) *hw.PartSpec {
	return &hw.PartSpec{
		Name:    name,
		Inputs:  gateIn,
		Outputs: gateOut,
		Mount:   gate(fn).mount,
	}
}

var (
	gateIn  = hw.Inputs{pA, pB}
	gateOut = hw.Outputs{pOut}

	and = newGate("AND", func(a, b bool) bool { return a && b })
	or  = newGate("OR", func(a, b bool) bool { return a || b })
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) hw.Part { return and.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) hw.Part { return or.NewPart(w) }
