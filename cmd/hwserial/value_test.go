package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/db47h/hwserial/spi"
	"github.com/db47h/hwserial/uart"
)

func TestParseValue(t *testing.T) {
	data := []struct {
		in  string
		exp []byte
		err bool
	}{
		{"0", []byte{0}, false},
		{"42", []byte{42}, false},
		{" 256 ", []byte{0, 1}, false},
		{"0x1234", []byte{0x34, 0x12}, false},
		{"0XFF", []byte{0xff}, false},
		{"0b101", []byte{5}, false},
		{"0x0000", []byte{0}, false},
		{"18446744073709551616", []byte{0, 0, 0, 0, 0, 0, 0, 0, 1}, false},
		{"", nil, true},
		{"0x", nil, true},
		{"0b", nil, true},
		{"0b102", nil, true},
		{"0xg", nil, true},
		{"-1", nil, true},
		{"12a", nil, true},
		{"1_000", nil, true},
	}
	for _, d := range data {
		v, err := parseValue(d.in)
		if d.err {
			require.Error(t, err, "input %q", d.in)
			continue
		}
		require.NoError(t, err, "input %q", d.in)
		require.Equal(t, d.exp, encode(v), "input %q", d.in)
	}
}

func TestSendLoop(t *testing.T) {
	in := strings.NewReader("1\n0x0102\nbogus\n0b11\nx\n42\n")
	var prompt, out bytes.Buffer
	require.NoError(t, sendLoop(in, &prompt, &out))
	require.Equal(t, []byte{1, 2, 1, 3}, out.Bytes())
	require.Equal(t, 5, strings.Count(prompt.String(), "(or x to exit)"))
}

func TestLoopback(t *testing.T) {
	cfg := uart.DefaultConfig()
	cfg.Reference = 16 * cfg.Baud

	var out bytes.Buffer
	require.NoError(t, loopback(&out, cfg, []byte{0x34, 0x12}, true))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "received 0x34")
	require.Contains(t, lines[1], "received 0x12")

	out.Reset()
	require.NoError(t, loopback(&out, cfg, []byte{0x34, 0x12}, false))
	require.Contains(t, out.String(), "overrun error (unread 0x34)")
}

func TestExchange(t *testing.T) {
	cfg := spi.DefaultConfig()
	var out bytes.Buffer
	require.NoError(t, exchange(&out, cfg, []byte{0xa5, 0x12}, []byte{0x3c, 0x34}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "master sent 0xa5, received 0x3c; slave sent 0x3c, received 0xa5")
	require.Contains(t, lines[1], "master sent 0x12, received 0x34; slave sent 0x34, received 0x12")
}
