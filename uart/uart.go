// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package uart implements a UART receiver and transmitter: 8 data bits, LSB
// first, one start bit, one stop bit, no parity.
//
// Engines are stepped once per reference clock edge, either directly with
// their Step method or as parts of a hwserial.Circuit (see RX and TX).
//
package uart

import (
	"periph.io/x/conn/v3/physic"

	"github.com/db47h/hwserial/timing"
)

// Phase is the phase of a UART engine.
//
type Phase int

// UART engine phases.
//
const (
	Idle Phase = iota
	Start
	Data
	Stop
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Start:
		return "start"
	case Data:
		return "data"
	case Stop:
		return "stop"
	}
	return "invalid"
}

// Config is the construction time configuration of a UART engine.
//
type Config struct {
	// Reference clock frequency: one Step per period.
	Reference physic.Frequency
	// Baud rate.
	Baud physic.Frequency
	// Phase is the fraction of a bit period between the detection of a start
	// bit and the first sample. Receivers use it to sample mid-bit; it is
	// ignored by transmitters.
	Phase float64
}

// DefaultConfig returns a 9600 baud configuration for a 100MHz reference
// clock that samples mid-bit.
//
func DefaultConfig() Config {
	return Config{
		Reference: 100 * physic.MegaHertz,
		Baud:      9600 * physic.Hertz,
		Phase:     0.5,
	}
}

func (cfg Config) divider(phase float64) (*timing.Divider, error) {
	return timing.NewDivider(timing.Config{
		Reference: cfg.Reference,
		Target:    cfg.Baud,
		Phase:     phase,
		Mode:      timing.Pulse,
	})
}
