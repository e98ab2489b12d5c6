// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package timing

import (
	hw "github.com/db47h/hwserial"
)

type tickGen struct {
	Clear int `hw:"in"`
	Rst   int `hw:"in"`
	Out   int `hw:"out"`

	d Divider
}

func (t *tickGen) Update(c *hw.Circuit) {
	if c.Get(t.Rst) {
		t.d.Reset()
	} else {
		t.d.Step(c.Get(t.Clear))
	}
	c.Set(t.Out, t.d.Out())
}

// TickGen returns a tick generator part for the given configuration.
//
//	Inputs: clear, rst
//	Outputs: out
//	Function: see Divider.Step
//
func TickGen(cfg Config) (hw.NewPartFn, error) {
	d, err := NewDivider(cfg)
	if err != nil {
		return nil, err
	}
	sp := hw.MakePart(&tickGen{d: *d})
	sp.Name = "TICKGEN"
	return sp.NewPart, nil
}

type syncPart struct {
	In  int `hw:"in"`
	Rst int `hw:"in"`
	Out int `hw:"out"`

	s Synchronizer
}

func (p *syncPart) Update(c *hw.Circuit) {
	if c.Get(p.Rst) {
		p.s.Reset()
	} else {
		p.s.Step(c.Get(p.In))
	}
	c.Set(p.Out, p.s.Out())
}

var syncSpec = func() *hw.PartSpec {
	sp := hw.MakePart((*syncPart)(nil))
	sp.Name = "SYNC"
	return sp
}()

// Sync returns a two stage synchronizer part resetting to false.
//
//	Inputs: in, rst
//	Outputs: out
//	Function: out(t) = in(t-2)
//
func Sync(w string) hw.Part { return syncSpec.NewPart(w) }
