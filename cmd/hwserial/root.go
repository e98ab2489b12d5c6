// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"flag"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/physic"
)

var (
	// reference clock of the simulated engines
	refClock = 100 * physic.MegaHertz
	// glog and simulator flags
	workers int
)

var rootCmd = &cobra.Command{
	Use:   "hwserial",
	Short: "Cycle accurate UART and SPI engines",
	Long: `hwserial runs the UART and SPI protocol engines in the hwserial circuit
simulator, one step per reference clock edge, and sends values to real UART
devices from the host.

Logging goes through glog: use -v=2 to trace protocol events and
-logtostderr to get them on the console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog complains if the go flag set has not been parsed.
		return flag.CommandLine.Parse(nil)
	},
}

// frequencyFlag adapts physic.Frequency to pflag.Value.
//
type frequencyFlag struct {
	*physic.Frequency
}

func (frequencyFlag) Type() string { return "frequency" }

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().Var(frequencyFlag{&refClock}, "ref", "Reference clock frequency of the simulated engines")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Number of goroutines updating simulated circuits (0 or 1: sequential)")
}
