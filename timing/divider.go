// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package timing

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
)

// Mode selects the output waveform of a Divider.
//
type Mode int

// Divider modes.
//
const (
	// Pulse outputs a one tick wide pulse every Divider reference ticks.
	Pulse Mode = iota
	// Square outputs a 50% duty cycle clock that toggles every Divider
	// reference ticks.
	Square
)

func (m Mode) String() string {
	switch m {
	case Pulse:
		return "pulse"
	case Square:
		return "square"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Config is the construction time configuration of a Divider.
//
type Config struct {
	// Reference is the frequency of the reference clock (one Step per period).
	Reference physic.Frequency
	// Target is the output frequency.
	Target physic.Frequency
	// Phase is the fraction of one output period by which the output is
	// advanced after a clear or reset. It is clamped to [0, 1].
	Phase float64
	Mode  Mode
}

// A Divider is a programmable tick generator. It derives a periodic pulse or
// a square clock from a fast reference clock.
//
// The zero value is not usable, use NewDivider.
//
type Divider struct {
	div    int // reference ticks per pulse (or per half period)
	offset int // counter value on reset/clear
	mode   Mode

	counter int
	out     bool
}

// NewDivider returns a new Divider for the given configuration. It returns
// an error if the target frequency is not positive or is too high for the
// reference clock.
//
func NewDivider(cfg Config) (*Divider, error) {
	if cfg.Target <= 0 {
		return nil, errors.Errorf("invalid target frequency %s", cfg.Target)
	}
	if cfg.Reference <= 0 {
		return nil, errors.Errorf("invalid reference frequency %s", cfg.Reference)
	}
	target := cfg.Target
	switch cfg.Mode {
	case Pulse:
	case Square:
		target *= 2
	default:
		return nil, errors.Errorf("invalid divider mode %d", cfg.Mode)
	}
	div := int((cfg.Reference + target/2) / target)
	if div < 1 {
		return nil, errors.Errorf("target frequency %s too high for reference %s", cfg.Target, cfg.Reference)
	}
	phase := math.Max(0, math.Min(1, cfg.Phase))
	if math.IsNaN(cfg.Phase) {
		phase = 0
	}
	d := &Divider{
		div:    div,
		offset: int(math.Round(phase * float64(div-1))),
		mode:   cfg.Mode,
	}
	d.Reset()
	return d, nil
}

// Divider returns the number of reference ticks per output pulse in Pulse
// mode or per half period in Square mode.
//
func (d *Divider) Divider() int { return d.div }

// Width returns the width in bits of the divider's counter.
//
func (d *Divider) Width() int {
	if w := bits.Len(uint(d.div - 1)); w > 0 {
		return w
	}
	return 1
}

// Offset returns the counter value loaded on reset or clear.
//
func (d *Divider) Offset() int { return d.offset }

// Reset forces the divider to its initial state.
//
func (d *Divider) Reset() {
	d.counter = d.offset
	d.out = false
}

// Out returns the current output level.
//
func (d *Divider) Out() bool { return d.out }

// Step advances the divider by one reference tick and returns the output
// level for that tick. While clear is true, the counter holds at its initial
// value and the output is held low.
//
func (d *Divider) Step(clear bool) bool {
	if clear {
		d.Reset()
		return false
	}
	wrap := d.counter == d.div-1
	if wrap {
		d.counter = 0
	} else {
		d.counter++
	}
	switch d.mode {
	case Pulse:
		d.out = wrap
	case Square:
		if wrap {
			d.out = !d.out
		}
	}
	return d.out
}
