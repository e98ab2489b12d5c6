// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import (
	hw "github.com/db47h/hwserial"
)

type masterPart struct {
	Start        int    `hw:"in"`
	ByteOut      [8]int `hw:"in,byte_out"`
	MISO         int    `hw:"in"`
	Ack          int    `hw:"in"`
	Rst          int    `hw:"in"`
	MOSI         int    `hw:"out"`
	SCLK         int    `hw:"out"`
	CSN          int    `hw:"out"`
	ByteIn       [8]int `hw:"out,byte_in"`
	Ready        int    `hw:"out"`
	DataInStored int    `hw:"out,data_in_stored"`
	Error        int    `hw:"out"`

	m Master
}

func (p *masterPart) Update(c *hw.Circuit) {
	if c.Get(p.Rst) {
		p.m.Reset()
	} else {
		p.m.Step(MasterInput{
			Start:   c.Get(p.Start),
			ByteOut: byte(c.GetInt(p.ByteOut[:])),
			MISO:    c.Get(p.MISO),
			Ack:     c.Get(p.Ack),
		})
	}
	c.Set(p.MOSI, p.m.MOSI())
	c.Set(p.SCLK, p.m.SCLK())
	c.Set(p.CSN, p.m.CSN())
	c.SetInt(p.ByteIn[:], uint64(p.m.ByteIn()))
	c.Set(p.Ready, p.m.Ready())
	c.Set(p.DataInStored, p.m.DataInStored())
	c.Set(p.Error, p.m.Error())
}

// MasterPart returns an SPI master part.
//
//	Inputs: start, byte_out[8], miso, ack, rst
//	Outputs: mosi, sclk, csn, byte_in[8], ready, data_in_stored, error
//	Function: see Master
//
func MasterPart(cfg Config) (hw.NewPartFn, error) {
	m, err := NewMaster(cfg)
	if err != nil {
		return nil, err
	}
	sp := hw.MakePart(&masterPart{m: *m})
	sp.Name = "SPI_MASTER"
	return sp.NewPart, nil
}

type slavePart struct {
	MOSI         int    `hw:"in"`
	SCLK         int    `hw:"in"`
	CSN          int    `hw:"in"`
	ByteOut      [8]int `hw:"in,byte_out"`
	Ack          int    `hw:"in"`
	Rst          int    `hw:"in"`
	MISO         int    `hw:"out"`
	ByteIn       [8]int `hw:"out,byte_in"`
	Ready        int    `hw:"out"`
	DataInStored int    `hw:"out,data_in_stored"`
	Error        int    `hw:"out"`

	s Slave
}

func (p *slavePart) Update(c *hw.Circuit) {
	if c.Get(p.Rst) {
		p.s.Reset()
	} else {
		p.s.Step(SlaveInput{
			MOSI:    c.Get(p.MOSI),
			SCLK:    c.Get(p.SCLK),
			CSN:     c.Get(p.CSN),
			ByteOut: byte(c.GetInt(p.ByteOut[:])),
			Ack:     c.Get(p.Ack),
		})
	}
	c.Set(p.MISO, p.s.MISO())
	c.SetInt(p.ByteIn[:], uint64(p.s.ByteIn()))
	c.Set(p.Ready, p.s.Ready())
	c.Set(p.DataInStored, p.s.DataInStored())
	c.Set(p.Error, p.s.Error())
}

var slaveSpec = func() *hw.PartSpec {
	sp := hw.MakePart(&slavePart{s: *NewSlave()})
	sp.Name = "SPI_SLAVE"
	return sp
}()

// SlavePart returns an SPI slave part.
//
//	Inputs: mosi, sclk, csn, byte_out[8], ack, rst
//	Outputs: miso, byte_in[8], ready, data_in_stored, error
//	Function: see Slave
//
func SlavePart(w string) hw.Part { return slaveSpec.NewPart(w) }
