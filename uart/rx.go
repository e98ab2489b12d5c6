// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/db47h/hwserial/mailbox"
	"github.com/db47h/hwserial/shift"
	"github.com/db47h/hwserial/timing"
)

// RxInput holds the input levels of a Receiver for one reference tick.
//
type RxInput struct {
	RX   bool // serial line
	Read bool // consumer acknowledge
}

// A Receiver deframes bytes from a serial line into a single slot mailbox.
//
// Both inputs are asynchronous and go through a Synchronizer. Overrun and
// framing errors are reported through the sticky Error flag; the consumer
// clears Ready and Error by raising Read.
//
type Receiver struct {
	rx   timing.Synchronizer
	read timing.Synchronizer
	tick timing.Divider

	phase Phase
	sr    shift.Register
	slot  mailbox.Slot
}

// NewReceiver returns a new Receiver in its reset state.
//
func NewReceiver(cfg Config) (*Receiver, error) {
	d, err := cfg.divider(cfg.Phase)
	if err != nil {
		return nil, errors.Wrap(err, "uart receiver")
	}
	r := &Receiver{
		rx:   timing.NewSynchronizer(true),
		read: timing.NewSynchronizer(false),
		tick: *d,
		sr:   shift.New(shift.LSBFirst),
	}
	return r, nil
}

// Reset forces the receiver back to Idle and empties its mailbox.
//
func (r *Receiver) Reset() {
	r.rx.Reset()
	r.read.Reset()
	r.tick.Reset()
	r.phase = Idle
	r.sr.Reset()
	r.slot.Clear()
}

// Step advances the receiver by one reference tick.
//
func (r *Receiver) Step(in RxInput) {
	rx := r.rx.Sample(in.RX)
	read := r.read.Sample(in.Read)
	// the bit clock is armed only while a frame is in flight.
	tick := r.tick.Step(r.phase == Idle)

	if read {
		r.slot.Clear()
	}

	switch r.phase {
	case Idle:
		if rx {
			break
		}
		if !r.slot.Empty() {
			if !r.slot.Failed() {
				glog.V(2).Infof("uart rx: overrun, %#02x unread", r.slot.Byte())
			}
			r.slot.Fail(mailbox.Overrun)
			break
		}
		r.phase = Start
	case Start:
		if !tick {
			break
		}
		if rx {
			// glitch
			r.phase = Idle
			break
		}
		r.sr.Reset()
		r.phase = Data
	case Data:
		if !tick {
			break
		}
		r.sr.Shift(rx)
		if r.sr.Full() {
			r.phase = Stop
		}
	case Stop:
		if !tick {
			break
		}
		if rx {
			r.slot.Put(r.sr.Byte())
			glog.V(2).Infof("uart rx: received %#02x", r.sr.Byte())
		} else {
			r.slot.Fail(mailbox.Framing)
			glog.V(2).Infof("uart rx: framing error, dropped %#02x", r.sr.Byte())
		}
		r.phase = Idle
	}
}

// Phase returns the current phase.
//
func (r *Receiver) Phase() Phase { return r.phase }

// Byte returns the last received byte. It is only valid while Ready is true.
//
func (r *Receiver) Byte() byte { return r.slot.Byte() }

// Ready returns true if a byte is available.
//
func (r *Receiver) Ready() bool { return r.slot.Ready() }

// Error returns true if an overrun or framing error occurred since the last
// acknowledge.
//
func (r *Receiver) Error() bool { return r.slot.Failed() }

// Err returns mailbox.ErrOverrun or mailbox.ErrFraming if Error is true.
//
func (r *Receiver) Err() error { return r.slot.Err() }

// Divider returns the number of reference ticks per bit.
//
func (r *Receiver) Divider() int { return r.tick.Divider() }
