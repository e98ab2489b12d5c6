// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package shift implements the byte shift engine shared by the UART and SPI
// engines: an 8 bit shift register with a bit counter.
//
package shift

// Order is the bit order on the line.
//
type Order int

// Bit orders.
//
const (
	LSBFirst Order = iota // UART
	MSBFirst              // SPI
)

func (o Order) String() string {
	if o == MSBFirst {
		return "msb-first"
	}
	return "lsb-first"
}

// Bits is the number of bits in a frame.
//
const Bits = 8

// Register is an 8 bit shift register.
//
// Bits shifted out leave from the head of the register (bit 0 in LSBFirst
// order, bit 7 in MSBFirst order) and bits shifted in enter at the tail, so
// that a register can transmit and receive a full duplex frame at the same
// time.
//
type Register struct {
	order Order
	bits  uint8
	n     int
}

// New returns a new register with the given bit order.
//
func New(o Order) Register {
	return Register{order: o}
}

// Load loads b into the register and resets the bit counter.
//
func (r *Register) Load(b byte) {
	r.bits = b
	r.n = 0
}

// Reset clears the register and its bit counter.
//
func (r *Register) Reset() { r.Load(0) }

// Out returns the bit at the head of the register: the next bit to go out.
//
func (r *Register) Out() bool {
	if r.order == MSBFirst {
		return r.bits&0x80 != 0
	}
	return r.bits&1 != 0
}

// Shift shifts the register by one bit, shifting in bit, and increments the
// bit counter. It returns the bit shifted out.
//
func (r *Register) Shift(bit bool) bool {
	out := r.Out()
	var in uint8
	if bit {
		in = 1
	}
	if r.order == MSBFirst {
		r.bits = r.bits<<1 | in
	} else {
		r.bits = r.bits>>1 | in<<7
	}
	if r.n < Bits {
		r.n++
	}
	return out
}

// Count returns the number of bits shifted since the last Load.
//
func (r *Register) Count() int { return r.n }

// Full returns true once all 8 bits have been shifted.
//
func (r *Register) Full() bool { return r.n >= Bits }

// Byte returns the register contents.
//
func (r *Register) Byte() byte { return r.bits }
