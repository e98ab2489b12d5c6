// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwserial drives the simulated serial engines and talks to real UART
// devices.
//
//	hwserial send --port /dev/ttyUSB0      # send values typed on stdin
//	hwserial loopback 0x1234 42            # simulated UART TX -> RX
//	hwserial spi 0xa5 0x3c                 # simulated SPI exchange
//
package main

import (
	"os"

	"github.com/golang/glog"
)

func main() {
	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
