// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/db47h/hwserial/shift"
	"github.com/db47h/hwserial/timing"
)

// TxInput holds the input levels of a Transmitter for one reference tick.
//
type TxInput struct {
	Start bool // transfer request, asynchronous
	Data  byte // byte to send, must be stable while Start is high
}

// A Transmitter frames bytes onto a serial line.
//
// When a synchronized Start request is seen while idle, Data is latched and
// DataInAck is raised for exactly one tick: the producer may then change Data.
// Busy stays high until the stop bit completes.
//
type Transmitter struct {
	start timing.Synchronizer
	tick  timing.Divider

	phase Phase
	sr    shift.Register
	tx    bool
	ack   bool
}

// NewTransmitter returns a new Transmitter in its reset state.
//
func NewTransmitter(cfg Config) (*Transmitter, error) {
	d, err := cfg.divider(0)
	if err != nil {
		return nil, errors.Wrap(err, "uart transmitter")
	}
	t := &Transmitter{
		start: timing.NewSynchronizer(false),
		tick:  *d,
		sr:    shift.New(shift.LSBFirst),
		tx:    true,
	}
	return t, nil
}

// Reset forces the transmitter back to Idle with the line high.
//
func (t *Transmitter) Reset() {
	t.start.Reset()
	t.tick.Reset()
	t.phase = Idle
	t.sr.Reset()
	t.tx = true
	t.ack = false
}

// Step advances the transmitter by one reference tick.
//
func (t *Transmitter) Step(in TxInput) {
	start := t.start.Sample(in.Start)
	tick := t.tick.Step(t.phase == Idle)

	t.ack = false

	switch t.phase {
	case Idle:
		t.tx = true
		if !start {
			break
		}
		t.sr.Load(in.Data)
		t.ack = true
		t.tx = false
		t.phase = Start
		glog.V(2).Infof("uart tx: sending %#02x", in.Data)
	case Start:
		if tick {
			t.tx = t.sr.Shift(false)
			t.phase = Data
		}
	case Data:
		if !tick {
			break
		}
		if t.sr.Full() {
			t.tx = true
			t.phase = Stop
		} else {
			t.tx = t.sr.Shift(false)
		}
	case Stop:
		if tick {
			t.phase = Idle
		}
	}
}

// Phase returns the current phase.
//
func (t *Transmitter) Phase() Phase { return t.phase }

// TX returns the serial line level.
//
func (t *Transmitter) TX() bool { return t.tx }

// DataInAck returns true during the tick following the capture of a byte.
//
func (t *Transmitter) DataInAck() bool { return t.ack }

// Busy returns true while a frame is being sent.
//
func (t *Transmitter) Busy() bool { return t.phase != Idle }

// Divider returns the number of reference ticks per bit.
//
func (t *Transmitter) Divider() int { return t.tick.Divider() }
