// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwserial

import (
	"strings"

	"github.com/pkg/errors"
)

type chip struct {
	PartSpec        // PartSpec for this chip
	parts    []Part // sub parts
	// wires maps, for each sub part, its pin names to the chip wire they are
	// connected to. A wire is either one of the chip's input or output pins, a
	// constant or an internal wire name.
	wires []map[string]string
}

func (c *chip) mount(s *Socket) []Component {
	var updaters []Component

	for i, p := range c.parts {
		sub := newSocket(s.c)
		w := c.wires[i]
		for _, k := range p.Inputs {
			if n, ok := w[k]; ok {
				sub.m[k] = s.PinOrNew(n)
			} else {
				// unconnected inputs are grounded.
				sub.m[k] = cstFalse
			}
		}
		for _, k := range p.Outputs {
			if n, ok := w[k]; ok {
				sub.m[k] = s.PinOrNew(n)
			} else {
				sub.m[k] = s.c.allocPin()
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	return updaters
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// A two stage synchronizer could be created like this:
//
//	sync2, err := Chip(
//		"SYNC2",
//		"in",
//		"out",
//		hwlib.DFF("in=in, out=s1"),
//		hwlib.DFF("in=s1, out=out"),
//	)
//
// The returned value is a function of type NewPartFn that can be used to
// compose the new part with others into other chips:
//
//	rx, err := Chip(
//		"RX",
//		"line",
//		"out",
//		sync2("in=line, out=synced"),
//		hwlib.Not("in=synced, out=out"),
//	)
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := parseIOspec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := parseIOspec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	pins := make(map[string]bool, len(ins)+len(outs))
	for _, n := range append(append([]string(nil), ins...), outs...) {
		if pins[n] {
			return nil, errors.New("duplicate pin name " + n + " in chip " + name)
		}
		pins[n] = true
	}
	isInput := make(map[string]bool, len(ins))
	for _, n := range ins {
		isInput[n] = true
	}

	c := &chip{
		PartSpec: PartSpec{Name: name, Inputs: ins, Outputs: outs},
		parts:    parts,
		wires:    make([]map[string]string, len(parts)),
	}

	// driven maps wire names to the pin that drives them.
	driven := make(map[string]string)
	for _, n := range ins {
		driven[n] = name + "." + n
	}
	for pnum, p := range parts {
		w, err := p.wires()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		c.wires[pnum] = w
		for _, k := range p.Outputs {
			n, ok := w[k]
			if !ok {
				continue
			}
			pn := p.Name + "." + k + ":" + n
			switch {
			case n == True || n == False:
				return nil, errors.New(pn + ": output pin connected to constant " + n + " input")
			case isInput[n]:
				return nil, errors.New(pn + ": chip input pin used as output")
			case driven[n] != "":
				return nil, errors.New(pn + ": output pin already used as output")
			}
			driven[n] = p.Name + "." + k
		}
	}
	for pnum, p := range parts {
		for _, k := range p.Inputs {
			n, ok := c.wires[pnum][k]
			if !ok || n == True || n == False {
				continue
			}
			if driven[n] == "" && !pins[n] {
				return nil, errors.New("pin " + n + " not connected to any output")
			}
		}
	}

	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

// wires expands the part's connections into a map of part pin names to
// host chip wires.
//
func (p *Part) wires() (map[string]string, error) {
	known := make(map[string]bool, len(p.Inputs)+len(p.Outputs))
	for _, n := range p.Inputs {
		known[n] = true
	}
	for _, n := range p.Outputs {
		known[n] = true
	}
	w := make(map[string]string)
	for _, conn := range p.Conns {
		pps, err := expandRange(conn.PP)
		if err != nil {
			return nil, errors.Wrap(err, "expand part pin "+conn.PP)
		}
		cps, err := expandRange(conn.CP)
		if err != nil {
			return nil, errors.Wrap(err, "expand chip pin "+conn.CP)
		}
		// whole bus: "data=bus"
		if len(pps) == 1 && !known[pps[0]] && known[BusPinName(pps[0], 0)] {
			bus := pps[0]
			pps = pps[:0]
			for i := 0; known[BusPinName(bus, i)]; i++ {
				pps = append(pps, BusPinName(bus, i))
			}
		}
		if cp := cps[0]; len(pps) > 1 && len(cps) == 1 && strings.IndexByte(cp, '[') < 0 {
			cps = make([]string, len(pps))
			for i := range cps {
				if cp == True || cp == False {
					cps[i] = cp
				} else {
					cps[i] = BusPinName(cp, i)
				}
			}
		}
		if len(pps) != len(cps) {
			return nil, errors.New("pin count mismatch in pin mapping: " + conn.PP + "=" + conn.CP)
		}
		for i, pp := range pps {
			if !known[pp] {
				return nil, errors.New("invalid pin name " + pp + " for part " + p.Name)
			}
			if _, ok := w[pp]; ok {
				return nil, errors.New("pin " + pp + " of part " + p.Name + " connected more than once")
			}
			w[pp] = cps[i]
		}
	}
	return w, nil
}
