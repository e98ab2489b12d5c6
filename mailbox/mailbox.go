// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mailbox implements the single slot buffer between a protocol engine
// and its consumer.
//
// A Slot is Empty, Full (a valid byte is available) or in Error. The engine
// fills it with Put or Fail; only the consumer's acknowledge (Clear) returns
// it to Empty.
//
package mailbox

import (
	"github.com/pkg/errors"
)

// State is the state of a Slot.
//
type State int

// Slot states.
//
const (
	Empty State = iota
	Full
	Error
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Full:
		return "full"
	case Error:
		return "error"
	}
	return "invalid"
}

// Kind is the kind of a protocol error.
//
type Kind int

// Error kinds.
//
const (
	// None is the kind of a Slot that is not in error.
	None Kind = iota
	// Overrun: new data arrived while the previous result was unread.
	Overrun
	// Framing: a UART stop bit was sampled low.
	Framing
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Overrun:
		return "overrun"
	case Framing:
		return "framing"
	}
	return "invalid"
}

// Errors returned by Slot.Err.
//
var (
	ErrOverrun = errors.New("overrun error")
	ErrFraming = errors.New("framing error")
)

// Err returns the error value for kind k or nil if k is None.
//
func (k Kind) Err() error {
	switch k {
	case Overrun:
		return ErrOverrun
	case Framing:
		return ErrFraming
	}
	return nil
}

// Slot is a single slot mailbox. The zero value is an Empty slot.
//
type Slot struct {
	state State
	b     byte
	kind  Kind
}

// Put stores b and marks the slot Full. It reports false and leaves the slot
// unchanged if the slot is not Empty.
//
func (s *Slot) Put(b byte) bool {
	if s.state != Empty {
		return false
	}
	s.state, s.b = Full, b
	return true
}

// Fail puts the slot in Error with the given kind. The stored byte, if any,
// is left untouched. The first error is sticky: failing a slot already in
// Error does not change its kind.
//
func (s *Slot) Fail(k Kind) {
	if s.state == Error {
		return
	}
	s.state, s.kind = Error, k
}

// Clear empties the slot. This is the consumer acknowledge.
//
func (s *Slot) Clear() {
	*s = Slot{}
}

// State returns the slot state.
//
func (s *Slot) State() State { return s.state }

// Empty returns true if the slot is Empty.
//
func (s *Slot) Empty() bool { return s.state == Empty }

// Ready returns true if a valid byte is available.
//
func (s *Slot) Ready() bool { return s.state == Full }

// Failed returns true if the slot is in Error.
//
func (s *Slot) Failed() bool { return s.state == Error }

// Kind returns the error kind, or None.
//
func (s *Slot) Kind() Kind { return s.kind }

// Byte returns the stored byte. After an overrun it is the stale byte that
// was left unread; after Clear it is 0.
//
func (s *Slot) Byte() byte { return s.b }

// Err returns ErrOverrun or ErrFraming when the slot is in Error, nil
// otherwise.
//
func (s *Slot) Err() error { return s.kind.Err() }
