// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/db47h/hwserial/mailbox"
	"github.com/db47h/hwserial/shift"
	"github.com/db47h/hwserial/timing"
)

// MasterInput holds the input levels of a Master for one reference tick.
//
type MasterInput struct {
	Start   bool // transfer request, asynchronous
	ByteOut byte // byte to send, must be stable while Start is high
	MISO    bool
	Ack     bool // consumer acknowledge, asynchronous
}

// A Master runs one byte full duplex transfers. It generates sclk with its
// own Divider, held cleared (sclk low) between transfers.
//
type Master struct {
	start timing.Synchronizer
	ack   timing.Synchronizer
	miso  timing.Synchronizer
	clk   timing.Divider
	edge  edge

	phase  Phase
	sr     shift.Register
	slot   mailbox.Slot
	mosi   bool
	sclk   bool
	csn    bool
	stored bool
}

// NewMaster returns a new Master in its reset state.
//
func NewMaster(cfg Config) (*Master, error) {
	d, err := cfg.divider()
	if err != nil {
		return nil, errors.Wrap(err, "spi master")
	}
	m := &Master{
		clk: *d,
		sr:  shift.New(shift.MSBFirst),
		csn: true,
	}
	return m, nil
}

// Reset forces the master back to Idle: chip select released, sclk low and
// mailbox empty.
//
func (m *Master) Reset() {
	m.start.Reset()
	m.ack.Reset()
	m.miso.Reset()
	m.clk.Reset()
	m.edge = edge{}
	m.phase = Idle
	m.sr.Reset()
	m.slot.Clear()
	m.mosi = false
	m.sclk = false
	m.csn = true
	m.stored = false
}

// Step advances the master by one reference tick.
//
func (m *Master) Step(in MasterInput) {
	start := m.start.Sample(in.Start)
	ack := m.ack.Sample(in.Ack)
	miso := m.miso.Sample(in.MISO)
	m.sclk = m.clk.Step(m.phase == Idle || m.phase == Stop)
	rising, falling := m.edge.update(m.sclk)

	if ack {
		m.slot.Clear()
	}
	m.stored = false

	switch m.phase {
	case Idle:
		if !start {
			break
		}
		if !m.slot.Empty() {
			if !m.slot.Failed() {
				glog.V(2).Infof("spi master: overrun, %#02x unread", m.slot.Byte())
			}
			m.slot.Fail(mailbox.Overrun)
			break
		}
		m.sr.Load(in.ByteOut)
		m.mosi = m.sr.Out()
		m.csn = false
		m.stored = true
		m.phase = Start
	case Start:
		m.phase = Data
	case Data:
		if rising {
			m.sr.Shift(miso)
			if m.sr.Full() {
				m.phase = Stop
			}
		} else if falling {
			m.mosi = m.sr.Out()
		}
	case Stop:
		m.csn = true
		m.slot.Put(m.sr.Byte())
		m.phase = Idle
		glog.V(2).Infof("spi master: transfer done, received %#02x", m.sr.Byte())
	}
}

// Phase returns the current phase.
//
func (m *Master) Phase() Phase { return m.phase }

// MOSI returns the level of the master out line.
//
func (m *Master) MOSI() bool { return m.mosi }

// SCLK returns the serial clock level.
//
func (m *Master) SCLK() bool { return m.sclk }

// CSN returns the chip select level (active low).
//
func (m *Master) CSN() bool { return m.csn }

// ByteIn returns the last received byte. It is only valid while Ready is true.
//
func (m *Master) ByteIn() byte { return m.slot.Byte() }

// Ready returns true if a received byte is available.
//
func (m *Master) Ready() bool { return m.slot.Ready() }

// DataInStored returns true during the tick following the capture of ByteOut.
//
func (m *Master) DataInStored() bool { return m.stored }

// Error returns true if an overrun occurred since the last acknowledge.
//
func (m *Master) Error() bool { return m.slot.Failed() }

// Err returns mailbox.ErrOverrun if Error is true.
//
func (m *Master) Err() error { return m.slot.Err() }

// Divider returns the number of reference ticks per sclk half period.
//
func (m *Master) Divider() int { return m.clk.Divider() }
