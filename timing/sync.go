// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package timing

// A Synchronizer brings an asynchronous signal into the local clock domain
// through two flip flops.
//
// Logic clocked on edge t must read Out before calling Step: it then sees the
// input as it was two edges earlier, never a level caught mid transition.
//
// The zero value is a synchronizer that resets to false.
//
type Synchronizer struct {
	stage1 bool
	stage2 bool
	init   bool
}

// NewSynchronizer returns a Synchronizer whose stages reset to the given
// level. Lines that idle high (UART rx, SPI chip select) should reset to
// true so that a reset does not fabricate a start condition.
//
func NewSynchronizer(resetLevel bool) Synchronizer {
	return Synchronizer{stage1: resetLevel, stage2: resetLevel, init: resetLevel}
}

// Out returns the synchronized output.
//
func (s *Synchronizer) Out() bool { return s.stage2 }

// Step clocks in the current input level.
//
func (s *Synchronizer) Step(in bool) {
	s.stage2 = s.stage1
	s.stage1 = in
}

// Sample returns the output then clocks in the input level.
//
func (s *Synchronizer) Sample(in bool) bool {
	out := s.stage2
	s.Step(in)
	return out
}

// Reset forces both stages to the reset level.
//
func (s *Synchronizer) Reset() {
	s.stage1 = s.init
	s.stage2 = s.init
}
