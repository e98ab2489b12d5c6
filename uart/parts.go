// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

import (
	hw "github.com/db47h/hwserial"
)

type rxPart struct {
	RX    int    `hw:"in"`
	Read  int    `hw:"in"`
	Rst   int    `hw:"in"`
	Data  [8]int `hw:"out"`
	Ready int    `hw:"out"`
	Error int    `hw:"out"`

	r Receiver
}

func (p *rxPart) Update(c *hw.Circuit) {
	if c.Get(p.Rst) {
		p.r.Reset()
	} else {
		p.r.Step(RxInput{RX: c.Get(p.RX), Read: c.Get(p.Read)})
	}
	c.SetInt(p.Data[:], uint64(p.r.Byte()))
	c.Set(p.Ready, p.r.Ready())
	c.Set(p.Error, p.r.Error())
}

// RX returns a UART receiver part.
//
//	Inputs: rx, read, rst
//	Outputs: data[8], ready, error
//	Function: see Receiver
//
func RX(cfg Config) (hw.NewPartFn, error) {
	r, err := NewReceiver(cfg)
	if err != nil {
		return nil, err
	}
	sp := hw.MakePart(&rxPart{r: *r})
	sp.Name = "UART_RX"
	return sp.NewPart, nil
}

type txPart struct {
	Start     int    `hw:"in"`
	Data      [8]int `hw:"in"`
	Rst       int    `hw:"in"`
	TX        int    `hw:"out"`
	DataInAck int    `hw:"out,data_in_ack"`
	Busy      int    `hw:"out"`

	t Transmitter
}

func (p *txPart) Update(c *hw.Circuit) {
	if c.Get(p.Rst) {
		p.t.Reset()
	} else {
		p.t.Step(TxInput{Start: c.Get(p.Start), Data: byte(c.GetInt(p.Data[:]))})
	}
	c.Set(p.TX, p.t.TX())
	c.Set(p.DataInAck, p.t.DataInAck())
	c.Set(p.Busy, p.t.Busy())
}

// TX returns a UART transmitter part.
//
//	Inputs: start, data[8], rst
//	Outputs: tx, data_in_ack, busy
//	Function: see Transmitter
//
func TX(cfg Config) (hw.NewPartFn, error) {
	t, err := NewTransmitter(cfg)
	if err != nil {
		return nil, err
	}
	sp := hw.MakePart(&txPart{t: *t})
	sp.Name = "UART_TX"
	return sp.NewPart, nil
}
