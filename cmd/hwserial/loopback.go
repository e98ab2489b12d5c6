// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/physic"

	"github.com/db47h/hwserial/uart"
)

var (
	loopBaud = 9600 * physic.Hertz
	loopNack bool
)

var loopbackCmd = &cobra.Command{
	Use:   "loopback value...",
	Short: "Send values through a simulated UART transmitter and receiver",
	Long: `Encode each value like the send command does and push the resulting bytes
through a simulated UART transmitter wired to a simulated receiver. Each byte
decoded by the receiver is printed along with the simulated time.

With --no-ack the receiver is never acknowledged, which shows overrun errors
from the second byte on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseBytes(args)
		if err != nil {
			return err
		}
		cfg := uart.DefaultConfig()
		cfg.Reference = refClock
		cfg.Baud = loopBaud
		return loopback(cmd.OutOrStdout(), cfg, data, !loopNack)
	},
}

func init() {
	loopbackCmd.Flags().Var(frequencyFlag{&loopBaud}, "baud", "Baud rate")
	loopbackCmd.Flags().BoolVar(&loopNack, "no-ack", false, "Never acknowledge received bytes")
	rootCmd.AddCommand(loopbackCmd)
}

// uartLink is a transmitter wired to a receiver, stepped in lock step.
//
type uartLink struct {
	tx    *uart.Transmitter
	rx    *uart.Receiver
	steps int

	start bool
	data  byte
	read  bool
}

func newUARTLink(cfg uart.Config) (*uartLink, error) {
	tx, err := uart.NewTransmitter(cfg)
	if err != nil {
		return nil, err
	}
	rx, err := uart.NewReceiver(cfg)
	if err != nil {
		return nil, err
	}
	return &uartLink{tx: tx, rx: rx}, nil
}

func (l *uartLink) step() {
	line := l.tx.TX()
	l.tx.Step(uart.TxInput{Start: l.start, Data: l.data})
	l.rx.Step(uart.RxInput{RX: line, Read: l.read})
	l.steps++
}

func (l *uartLink) run(max int, cond func() bool) bool {
	for i := 0; i < max; i++ {
		if cond() {
			return true
		}
		l.step()
	}
	return cond()
}

// send transmits b and waits for the line to go idle.
//
func (l *uartLink) send(b byte) error {
	frame := 12 * l.tx.Divider()
	l.data, l.start = b, true
	if !l.run(16, l.tx.DataInAck) {
		return errors.Errorf("transmitter did not accept %#02x", b)
	}
	l.start = false
	if !l.run(frame, func() bool { return !l.tx.Busy() }) {
		return errors.Errorf("transmitter stuck sending %#02x", b)
	}
	// the receiver samples the stop bit half a bit time before the end of
	// the frame; a couple more steps cover the synchronizer latency.
	l.run(8, func() bool { return false })
	return nil
}

func (l *uartLink) ack() {
	l.read = true
	l.run(16, func() bool { return !l.rx.Ready() && !l.rx.Error() })
	l.read = false
	l.run(4, func() bool { return false })
}

func loopback(w io.Writer, cfg uart.Config, data []byte, ack bool) error {
	l, err := newUARTLink(cfg)
	if err != nil {
		return err
	}
	period := cfg.Reference.Period()
	glog.Infof("uart loopback: %s reference, %s baud, %d ticks per bit", cfg.Reference, cfg.Baud, l.tx.Divider())
	for _, b := range data {
		if err = l.send(b); err != nil {
			return err
		}
		t := period * time.Duration(l.steps)
		switch {
		case l.rx.Error():
			fmt.Fprintf(w, "%12v sent %#02x, receive error: %v (unread %#02x)\n", t, b, l.rx.Err(), l.rx.Byte())
		case l.rx.Ready():
			fmt.Fprintf(w, "%12v sent %#02x, received %#02x\n", t, b, l.rx.Byte())
		default:
			fmt.Fprintf(w, "%12v sent %#02x, nothing received\n", t, b)
		}
		if ack {
			l.ack()
		}
	}
	return nil
}
