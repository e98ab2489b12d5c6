// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import hw "github.com/db47h/hwserial"

var dff = hw.PartSpec{
	Name:    "DFF",
	Inputs:  hw.Inputs{pIn},
	Outputs: hw.Outputs{pOut},
	Mount: func(s *hw.Socket) []hw.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []hw.Component{
			func(c *hw.Circuit) {
				// latched on every reference clock edge.
				c.Set(out, c.Get(in))
			}}
	}}

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(w string) hw.Part {
	return dff.NewPart(w)
}
