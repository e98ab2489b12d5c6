package hwlib_test

import (
	"testing"

	hw "github.com/db47h/hwserial"
	hl "github.com/db47h/hwserial/hwlib"
	"github.com/db47h/hwserial/hwtest"
)

func TestDFF(t *testing.T) {
	var in, out uint64

	dff4, err := hw.Chip("DFF4", "in[4]", "out[4]",
		hl.DFF("in=in[0], out=out[0]"),
		hl.DFF("in=in[1], out=out[1]"),
		hl.DFF("in=in[2], out=out[2]"),
		hl.DFF("in=in[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	c, err := hw.NewCircuit(0,
		hl.InputN(4, func() uint64 { return in })("out=in"),
		dff4("in=in, out=out"),
		hl.OutputN(4, func(o uint64) { out = o })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}

	// the probe sees the input value set two steps earlier: one step to
	// drive the input wire, one to latch it.
	var hist [2]uint64
	for i := 0; i < 64; i++ {
		in = uint64(i & 15)
		c.Step()
		if i >= 2 && out != hist[i%2] {
			t.Fatalf("step %d: expected out = %d, got %d", i, hist[i%2], out)
		}
		hist[i%2] = in
	}
}

func TestDFF_compare(t *testing.T) {
	dff, err := hw.Chip("DFF_WRAP", "in", "out",
		hl.DFF("in=in, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 1000, hl.DFF, dff)
}
