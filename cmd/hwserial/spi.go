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

	hw "github.com/db47h/hwserial"
	"github.com/db47h/hwserial/hwlib"
	"github.com/db47h/hwserial/shift"
	"github.com/db47h/hwserial/spi"
)

var spiClock = physic.MegaHertz

var spiCmd = &cobra.Command{
	Use:   "spi master_value slave_value",
	Short: "Exchange values between a simulated SPI master and slave",
	Long: `Encode both values like the send command does, then exchange them byte by
byte between a simulated SPI master and slave wired together in a circuit.
The shorter value is padded with zero bytes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mOut, err := parseBytes(args[:1])
		if err != nil {
			return err
		}
		sOut, err := parseBytes(args[1:])
		if err != nil {
			return err
		}
		for len(mOut) < len(sOut) {
			mOut = append(mOut, 0)
		}
		for len(sOut) < len(mOut) {
			sOut = append(sOut, 0)
		}
		cfg := spi.DefaultConfig()
		cfg.Reference = refClock
		cfg.SCLK = spiClock
		return exchange(cmd.OutOrStdout(), cfg, mOut, sOut)
	},
}

func init() {
	spiCmd.Flags().Var(frequencyFlag{&spiClock}, "sclk", "Serial clock frequency")
	rootCmd.AddCommand(spiCmd)
}

// spiBus is a master and a slave part wired together in a circuit, with
// function based inputs and outputs.
//
type spiBus struct {
	c *hw.Circuit

	rst, start, ack bool
	mOut, sOut      uint64
	mIn, sIn        uint64
	mReady, sReady  bool
	stored          bool
	mErr, sErr      bool
}

func newSPIBus(cfg spi.Config) (*spiBus, error) {
	master, err := spi.MasterPart(cfg)
	if err != nil {
		return nil, err
	}
	b := new(spiBus)
	b.c, err = hw.NewCircuit(workers,
		hwlib.Input(func() bool { return b.rst })("out=rst"),
		hwlib.Input(func() bool { return b.start })("out=start"),
		hwlib.Input(func() bool { return b.ack })("out=ack"),
		hwlib.InputN(8, func() uint64 { return b.mOut })("out=m_out"),
		hwlib.InputN(8, func() uint64 { return b.sOut })("out=s_out"),
		master("start=start, byte_out=m_out, miso=miso, ack=ack, rst=rst, "+
			"mosi=mosi, sclk=sclk, csn=csn, byte_in=m_in, ready=m_ready, data_in_stored=stored, error=m_err"),
		spi.SlavePart("mosi=mosi, sclk=sclk, csn=csn, byte_out=s_out, ack=ack, rst=rst, "+
			"miso=miso, byte_in=s_in, ready=s_ready, error=s_err"),
		hwlib.OutputN(8, func(v uint64) { b.mIn = v })("in=m_in"),
		hwlib.OutputN(8, func(v uint64) { b.sIn = v })("in=s_in"),
		hwlib.Output(func(v bool) { b.mReady = v })("in=m_ready"),
		hwlib.Output(func(v bool) { b.sReady = v })("in=s_ready"),
		hwlib.Output(func(v bool) { b.stored = v })("in=stored"),
		hwlib.Output(func(v bool) { b.mErr = v })("in=m_err"),
		hwlib.Output(func(v bool) { b.sErr = v })("in=s_err"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "spi bus")
	}
	// power on reset
	b.rst = true
	b.c.Run(4)
	b.rst = false
	b.c.Run(4)
	return b, nil
}

func (b *spiBus) transfer(mOut, sOut byte, limit int) error {
	b.mOut, b.sOut = uint64(mOut), uint64(sOut)
	b.start = true
	_, ok := b.c.RunUntil(16, func() bool { return b.stored || b.mErr })
	b.start = false
	if b.mErr {
		return errors.New("master overrun")
	}
	if !ok {
		return errors.Errorf("master did not accept %#02x", mOut)
	}
	if _, ok = b.c.RunUntil(limit, func() bool { return b.mReady && (b.sReady || b.sErr) }); !ok {
		return errors.Errorf("transfer of %#02x timed out", mOut)
	}
	return nil
}

func (b *spiBus) acknowledge() {
	b.ack = true
	b.c.RunUntil(16, func() bool { return !b.mReady && !b.sReady && !b.sErr })
	b.ack = false
	b.c.Run(8)
}

func exchange(w io.Writer, cfg spi.Config, mOut, sOut []byte) error {
	b, err := newSPIBus(cfg)
	if err != nil {
		return err
	}
	defer b.c.Dispose()

	// reference ticks for a byte, with room to spare.
	limit := 2 * shift.Bits * int(cfg.Reference/cfg.SCLK)
	period := cfg.Reference.Period()
	glog.Infof("spi exchange: %s reference, %s sclk", cfg.Reference, cfg.SCLK)

	for i := range mOut {
		if err = b.transfer(mOut[i], sOut[i], limit); err != nil {
			return err
		}
		t := period * time.Duration(b.c.Steps())
		if b.sErr {
			fmt.Fprintf(w, "%12v master sent %#02x, received %#02x; slave error\n", t, mOut[i], b.mIn)
		} else {
			fmt.Fprintf(w, "%12v master sent %#02x, received %#02x; slave sent %#02x, received %#02x\n", t, mOut[i], b.mIn, sOut[i], b.sIn)
		}
		b.acknowledge()
	}
	return nil
}
