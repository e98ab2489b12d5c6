package spi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	hw "github.com/db47h/hwserial"
	hl "github.com/db47h/hwserial/hwlib"
	"github.com/db47h/hwserial/hwtest"
	"github.com/db47h/hwserial/spi"
)

func TestParts_exchange(t *testing.T) {
	master, err := spi.MasterPart(spi.DefaultConfig())
	require.NoError(t, err)

	var (
		rst, start, ack        bool
		mOut, sOut             uint64
		mIn, sIn               uint64
		mReady, sReady         bool
		mStored, sStored, mErr bool
	)
	c, err := hw.NewCircuit(0,
		hl.Input(func() bool { return rst })("out=rst"),
		hl.Input(func() bool { return start })("out=start"),
		hl.Input(func() bool { return ack })("out=ack"),
		hl.InputN(8, func() uint64 { return mOut })("out=m_out"),
		hl.InputN(8, func() uint64 { return sOut })("out=s_out"),
		master("start=start, byte_out=m_out, miso=miso, ack=ack, rst=rst, "+
			"mosi=mosi, sclk=sclk, csn=csn, byte_in=m_in, ready=m_ready, data_in_stored=m_stored, error=m_error"),
		spi.SlavePart("mosi=mosi, sclk=sclk, csn=csn, byte_out=s_out, ack=ack, rst=rst, "+
			"miso=miso, byte_in=s_in, ready=s_ready, data_in_stored=s_stored"),
		hl.OutputN(8, func(v uint64) { mIn = v })("in=m_in"),
		hl.OutputN(8, func(v uint64) { sIn = v })("in=s_in"),
		hl.Output(func(b bool) { mReady = b })("in=m_ready"),
		hl.Output(func(b bool) { sReady = b })("in=s_ready"),
		hl.Output(func(b bool) { mStored = b })("in=m_stored"),
		hl.Output(func(b bool) { sStored = b })("in=s_stored"),
		hl.Output(func(b bool) { mErr = b })("in=m_error"),
	)
	require.NoError(t, err)

	hwtest.PowerOn(c, &rst)
	c.Run(hwtest.ResetSteps)

	for _, d := range [][2]uint64{{0xa5, 0x3c}, {0x01, 0x80}, {0xff, 0x00}} {
		mOut, sOut = d[0], d[1]
		start = true
		_, ok := c.RunUntil(10, func() bool { return mStored })
		require.True(t, ok, "no data_in_stored")
		start = false
		_, ok = c.RunUntil(20, func() bool { return sStored })
		require.True(t, ok, "slave did not latch its byte")

		_, ok = c.RunUntil(2000, func() bool { return mReady && sReady })
		require.True(t, ok, "transfer did not complete")
		require.Equal(t, d[1], mIn)
		require.Equal(t, d[0], sIn)
		require.False(t, mErr)

		ack = true
		_, ok = c.RunUntil(10, func() bool { return !mReady && !sReady })
		require.True(t, ok, "ready not cleared")
		ack = false
		c.Run(10)
	}
}
