// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package spi implements an SPI master and slave exchanging one byte per
// transfer, MSB first, in mode 0: sclk idles low, data is driven on the
// falling edge and sampled on the rising edge, chip select is active low.
//
package spi

import (
	"periph.io/x/conn/v3/physic"

	"github.com/db47h/hwserial/timing"
)

// Phase is the phase of an SPI engine.
//
type Phase int

// SPI engine phases.
//
const (
	Idle Phase = iota
	Start
	Data
	Stop
	// Done: the slave has a byte and waits for chip select to be released.
	Done
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
	case Done:
		return "done"
	}
	return "invalid"
}

// Config is the construction time configuration of a Master.
//
type Config struct {
	// Reference clock frequency: one Step per period.
	Reference physic.Frequency
	// SCLK is the serial clock frequency.
	SCLK physic.Frequency
	// Phase advances the first sclk edge by a fraction of a half period.
	Phase float64
}

// DefaultConfig returns a 1MHz serial clock configuration for a 100MHz
// reference clock.
//
func DefaultConfig() Config {
	return Config{
		Reference: 100 * physic.MegaHertz,
		SCLK:      physic.MegaHertz,
	}
}

// edge detects sclk edges against the previous level.
//
type edge struct {
	prev bool
}

func (e *edge) update(level bool) (rising, falling bool) {
	rising, falling = level && !e.prev, !level && e.prev
	e.prev = level
	return
}

func (cfg Config) divider() (*timing.Divider, error) {
	return timing.NewDivider(timing.Config{
		Reference: cfg.Reference,
		Target:    cfg.SCLK,
		Phase:     cfg.Phase,
		Mode:      timing.Square,
	})
}
