package spi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/db47h/hwserial/mailbox"
	"github.com/db47h/hwserial/spi"
)

type bench struct {
	t *testing.T
	m *spi.Master
	s *spi.Slave

	start   bool
	mOut    byte
	mAck    bool
	sOut    byte
	sAck    bool
	stored  int
	sStored int
}

func newBench(t *testing.T) *bench {
	m, err := spi.NewMaster(spi.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 50, m.Divider())
	return &bench{t: t, m: m, s: spi.NewSlave()}
}

func (b *bench) step() {
	// both engines see the bus levels of the previous tick.
	mosi, sclk, csn, miso := b.m.MOSI(), b.m.SCLK(), b.m.CSN(), b.s.MISO()
	b.m.Step(spi.MasterInput{Start: b.start, ByteOut: b.mOut, MISO: miso, Ack: b.mAck})
	b.s.Step(spi.SlaveInput{MOSI: mosi, SCLK: sclk, CSN: csn, ByteOut: b.sOut, Ack: b.sAck})
	if b.m.DataInStored() {
		b.stored++
	}
	if b.s.DataInStored() {
		b.sStored++
	}
}

func (b *bench) until(max int, cond func() bool) {
	b.t.Helper()
	for i := 0; i < max; i++ {
		if cond() {
			return
		}
		b.step()
	}
	require.FailNow(b.t, "timeout")
}

// transfer runs one transfer and waits for chip select to be released.
func (b *bench) transfer(mOut, sOut byte) {
	b.t.Helper()
	b.mOut, b.sOut = mOut, sOut
	b.start = true
	b.until(10, b.m.DataInStored)
	b.start = false
	b.until(2000, func() bool { return b.m.Phase() == spi.Idle && b.m.CSN() })
	for i := 0; i < 10; i++ {
		b.step()
	}
}

func (b *bench) ack() {
	b.t.Helper()
	b.mAck, b.sAck = true, true
	for i := 0; i < 4; i++ {
		b.step()
	}
	b.mAck, b.sAck = false, false
	for i := 0; i < 4; i++ {
		b.step()
	}
}

func TestMasterSlave(t *testing.T) {
	b := newBench(t)
	require.True(t, b.m.CSN())
	require.False(t, b.m.SCLK())

	b.transfer(0xa5, 0x3c)
	require.True(t, b.m.Ready())
	require.Equal(t, byte(0x3c), b.m.ByteIn())
	require.True(t, b.s.Ready())
	require.Equal(t, byte(0xa5), b.s.ByteIn())
	require.Equal(t, 1, b.stored)
	require.Equal(t, 1, b.sStored)
	require.False(t, b.m.Error())
	require.False(t, b.s.Error())
	require.Equal(t, spi.Idle, b.s.Phase())

	b.ack()
	require.False(t, b.m.Ready())
	require.False(t, b.s.Ready())

	for _, d := range [][2]byte{{0x00, 0xff}, {0xff, 0x00}, {0x81, 0x7e}, {0x3c, 0xa5}} {
		b.transfer(d[0], d[1])
		require.Equal(t, d[1], b.m.ByteIn())
		require.Equal(t, d[0], b.s.ByteIn())
		b.ack()
	}
}

func TestMaster_overrun(t *testing.T) {
	b := newBench(t)
	b.transfer(0x11, 0x22)
	require.True(t, b.m.Ready())

	// new start without acknowledge
	b.start = true
	for i := 0; i < 200; i++ {
		b.step()
		require.True(t, b.m.CSN(), "transfer started over an unread byte")
	}
	b.start = false
	require.True(t, b.m.Error())
	require.False(t, b.m.Ready())
	require.Equal(t, mailbox.ErrOverrun, b.m.Err())
	require.Equal(t, byte(0x22), b.m.ByteIn())

	b.ack()
	require.False(t, b.m.Error())
	b.transfer(0x33, 0x44)
	require.True(t, b.m.Ready())
	require.Equal(t, byte(0x44), b.m.ByteIn())
}

func TestSlave_overrun(t *testing.T) {
	b := newBench(t)
	b.transfer(0x11, 0x22)
	require.True(t, b.s.Ready())

	// acknowledge the master only.
	b.mAck = true
	for i := 0; i < 4; i++ {
		b.step()
	}
	b.mAck = false
	for i := 0; i < 4; i++ {
		b.step()
	}
	b.transfer(0x55, 0x66)
	require.True(t, b.s.Error())
	require.Equal(t, mailbox.ErrOverrun, b.s.Err())
	require.Equal(t, byte(0x11), b.s.ByteIn())
	require.Equal(t, 1, b.sStored)
}

// driver drives a slave directly with a 16 tick sclk period.
type driver struct {
	s    *spi.Slave
	csn  bool
	ack  bool
	miso []bool
}

const half = 8

func (d *driver) tick(mosi, sclk bool) {
	d.s.Step(spi.SlaveInput{MOSI: mosi, SCLK: sclk, CSN: d.csn, ByteOut: 0x96, Ack: d.ack})
}

func (d *driver) idle(n int) {
	for i := 0; i < n; i++ {
		d.tick(false, false)
	}
}

// clock sends b, MSB first, sampling miso before each rising edge.
func (d *driver) clock(b byte) {
	for i := uint(0); i < 8; i++ {
		bit := b&(0x80>>i) != 0
		for j := 0; j < half; j++ {
			d.tick(bit, false)
		}
		d.miso = append(d.miso, d.s.MISO())
		for j := 0; j < half; j++ {
			d.tick(bit, true)
		}
	}
}

func TestSlave_one_byte_per_select(t *testing.T) {
	d := &driver{s: spi.NewSlave(), csn: true}
	d.idle(4)
	d.csn = false
	d.idle(half)
	d.clock(0xc3)
	d.idle(half)
	require.True(t, d.s.Ready())
	require.Equal(t, byte(0xc3), d.s.ByteIn())
	require.Equal(t, spi.Done, d.s.Phase())

	var out byte
	for _, b := range d.miso {
		out <<= 1
		if b {
			out |= 1
		}
	}
	require.Equal(t, byte(0x96), out)

	// acknowledge while chip select is still active: no new transfer.
	d.ack = true
	d.idle(4)
	d.ack = false
	d.idle(4)
	require.False(t, d.s.Ready())
	d.clock(0x0f)
	d.idle(half)
	require.False(t, d.s.Ready())
	require.False(t, d.s.Error())

	d.csn = true
	d.idle(4)
	require.Equal(t, spi.Idle, d.s.Phase())
}

func TestSlave_abort(t *testing.T) {
	d := &driver{s: spi.NewSlave(), csn: true}
	d.idle(4)
	d.csn = false
	d.idle(half)
	// four bits only
	for i := 0; i < 4; i++ {
		d.idle(half)
		for j := 0; j < half; j++ {
			d.tick(true, true)
		}
	}
	d.csn = true
	d.idle(4)
	require.Equal(t, spi.Idle, d.s.Phase())
	require.False(t, d.s.Ready())
	require.False(t, d.s.Error())
}

func TestSlave_reset(t *testing.T) {
	d := &driver{s: spi.NewSlave(), csn: true}
	d.csn = false
	d.idle(half)
	d.clock(0x01)
	d.idle(half)
	require.True(t, d.s.Ready())
	d.s.Reset()
	require.False(t, d.s.Ready())
	require.Equal(t, spi.Idle, d.s.Phase())
	require.False(t, d.s.MISO())
}

func TestNewMaster_error(t *testing.T) {
	cfg := spi.DefaultConfig()
	cfg.SCLK = 2 * cfg.Reference
	_, err := spi.NewMaster(cfg)
	require.Error(t, err)
	_, err = spi.MasterPart(cfg)
	require.Error(t, err)
}
