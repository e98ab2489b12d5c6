// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import (
	"github.com/golang/glog"

	"github.com/db47h/hwserial/mailbox"
	"github.com/db47h/hwserial/shift"
	"github.com/db47h/hwserial/timing"
)

// SlaveInput holds the input levels of a Slave for one reference tick.
//
type SlaveInput struct {
	MOSI    bool
	SCLK    bool
	CSN     bool
	ByteOut byte // byte to send, latched when chip select goes active
	Ack     bool // consumer acknowledge, asynchronous
}

// A Slave answers one byte transfers driven by an external master. All bus
// lines are synchronized into the slave's clock domain, so the reference
// clock must be several times faster than sclk.
//
// Only one byte is exchanged per chip select assertion.
//
type Slave struct {
	mosi timing.Synchronizer
	sclk timing.Synchronizer
	csn  timing.Synchronizer
	ack  timing.Synchronizer
	edge edge

	phase  Phase
	sr     shift.Register
	slot   mailbox.Slot
	miso   bool
	stored bool
}

// NewSlave returns a new Slave in its reset state.
//
func NewSlave() *Slave {
	s := new(Slave)
	s.csn = timing.NewSynchronizer(true)
	s.sr = shift.New(shift.MSBFirst)
	return s
}

// Reset forces the slave back to Idle and empties its mailbox.
//
func (s *Slave) Reset() {
	s.mosi.Reset()
	s.sclk.Reset()
	s.csn.Reset()
	s.ack.Reset()
	s.edge = edge{}
	s.phase = Idle
	s.sr.Reset()
	s.slot.Clear()
	s.miso = false
	s.stored = false
}

// Step advances the slave by one reference tick.
//
func (s *Slave) Step(in SlaveInput) {
	mosi := s.mosi.Sample(in.MOSI)
	sclk := s.sclk.Sample(in.SCLK)
	csn := s.csn.Sample(in.CSN)
	ack := s.ack.Sample(in.Ack)
	rising, falling := s.edge.update(sclk)

	if ack {
		s.slot.Clear()
	}
	s.stored = false

	switch s.phase {
	case Idle:
		if csn {
			break
		}
		if !s.slot.Empty() {
			if !s.slot.Failed() {
				glog.V(2).Infof("spi slave: overrun, %#02x unread", s.slot.Byte())
			}
			s.slot.Fail(mailbox.Overrun)
			s.phase = Done
			break
		}
		s.sr.Load(in.ByteOut)
		s.miso = s.sr.Out()
		s.stored = true
		s.phase = Data
	case Data:
		switch {
		case csn:
			glog.V(2).Infof("spi slave: chip select released after %d bits", s.sr.Count())
			s.phase = Idle
		case rising:
			s.sr.Shift(mosi)
			if s.sr.Full() {
				s.slot.Put(s.sr.Byte())
				s.phase = Done
				glog.V(2).Infof("spi slave: transfer done, received %#02x", s.sr.Byte())
			}
		case falling:
			s.miso = s.sr.Out()
		}
	case Done:
		if csn {
			s.phase = Idle
		}
	}
}

// Phase returns the current phase.
//
func (s *Slave) Phase() Phase { return s.phase }

// MISO returns the level of the slave out line.
//
func (s *Slave) MISO() bool { return s.miso }

// ByteIn returns the last received byte. It is only valid while Ready is true.
//
func (s *Slave) ByteIn() byte { return s.slot.Byte() }

// Ready returns true if a received byte is available.
//
func (s *Slave) Ready() bool { return s.slot.Ready() }

// DataInStored returns true during the tick following the capture of ByteOut.
//
func (s *Slave) DataInStored() bool { return s.stored }

// Error returns true if an overrun occurred since the last acknowledge.
//
func (s *Slave) Error() bool { return s.slot.Failed() }

// Err returns mailbox.ErrOverrun if Error is true.
//
func (s *Slave) Err() error { return s.slot.Err() }
