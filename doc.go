// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwserial provides a cycle based hardware simulator and a set of serial
peripherals built on top of it: UART receiver and transmitter, SPI master and
SPI slave.

The simulator kernel lets you compose parts into chips using Go as a hardware
description language:

	sync2, err := hwserial.Chip("SYNC2", "in", "out",
		hwlib.DFF("in=in, out=s1"),
		hwlib.DFF("in=s1, out=out"),
	)

Every call to Circuit.Step simulates one edge of the reference clock. Parts read
the wire states set during the previous step and write new ones which only
become visible on the next step. As a result, every part is a register and the
simulation does not depend on the order in which parts are updated.

Serial engines live in their own packages (uart, spi) and can be used either
as plain Go state machines, calling their Step method once per reference clock
edge, or as circuit parts wired to other parts by name.
*/
package hwserial
