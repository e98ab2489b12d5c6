// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var (
	portName string
	baudRate int
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send values typed on stdin to a serial port",
	Long: `Read values from stdin, one per line, and write them to a serial port.

Values are decimal, hexadecimal (0x prefix) or binary (0b prefix) integers.
Each value is sent little endian in the minimum number of bytes. Invalid
values are logged and skipped. Enter x to exit.

If --port is not specified, the first detected serial port is used.`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&portName, "port", "p", "", "Serial port device (auto detected if empty)")
	sendCmd.Flags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate")
	rootCmd.AddCommand(sendCmd)
}

func detectPort() (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", errors.Wrap(err, "list serial ports")
	}
	if len(ports) == 0 {
		return "", errors.New("no serial port detected")
	}
	for _, p := range ports {
		glog.Infof("detected serial port %s", p)
	}
	glog.Infof("selected serial port %s", ports[0])
	return ports[0], nil
}

func runSend(cmd *cobra.Command, args []string) error {
	name := portName
	if name == "" {
		var err error
		if name, err = detectPort(); err != nil {
			return err
		}
	}
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return errors.Wrapf(err, "open serial port %s", name)
	}
	defer func() {
		port.Close()
		glog.Info("serial port closed")
	}()

	return sendLoop(os.Stdin, cmd.OutOrStdout(), port)
}

// sendLoop reads values from r, one per line, and writes their encoding to w.
// Prompts go to prompt. It returns when r is exhausted or on a line
// containing only "x".
//
func sendLoop(r io.Reader, prompt io.Writer, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(prompt, "Enter int, hex, or bits to send (or x to exit): ")
		if !sc.Scan() {
			fmt.Fprintln(prompt)
			return sc.Err()
		}
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line == "x" {
			return nil
		}
		v, err := parseValue(line)
		if err != nil {
			glog.Warning(err)
			continue
		}
		b := encode(v)
		if _, err = w.Write(b); err != nil {
			return errors.Wrap(err, "write")
		}
		glog.V(1).Infof("sent % x", b)
	}
}
