package hwserial_test

import (
	"testing"

	hw "github.com/db47h/hwserial"
	hl "github.com/db47h/hwserial/hwlib"
	"github.com/db47h/hwserial/hwtest"
)

type and4 struct {
	A   [4]int `hw:"in"`
	B   [4]int `hw:"in"`
	Out [4]int `hw:"out"`
}

func (p *and4) Update(c *hw.Circuit) {
	for i := range p.Out {
		c.Set(p.Out[i], c.Get(p.A[i]) && c.Get(p.B[i]))
	}
}

func Test_MakePart(t *testing.T) {
	m, err := hw.Chip("AND4", "a[4], b[4]", "out[4]",
		hl.And("a=a[0], b=b[0], out=out[0]"),
		hl.And("a=a[1], b=b[1], out=out[1]"),
		hl.And("a=a[2], b=b[2], out=out[2]"),
		hl.And("a=a[3], b=b[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	p := hw.MakePart((*and4)(nil)).NewPart
	hwtest.ComparePart(t, 1000, m, p)
}

// counter counts steps where en is high. Its start value comes from the
// prototype given to MakePart.
type counter struct {
	En  int    `hw:"in"`
	Out [8]int `hw:"out,count"`
	n   uint64
}

func (p *counter) Update(c *hw.Circuit) {
	if c.Get(p.En) {
		p.n++
	}
	c.SetInt(p.Out[:], p.n)
}

func Test_MakePart_prototype(t *testing.T) {
	spec := hw.MakePart(&counter{n: 10})
	if spec.Name != "counter" {
		t.Fatalf("unexpected part name %q", spec.Name)
	}
	if len(spec.Outputs) != 8 || spec.Outputs[0] != "count[0]" {
		t.Fatalf("unexpected outputs %v", spec.Outputs)
	}
	var c1, c2 uint64
	c, err := hw.NewCircuit(0,
		spec.NewPart("en=true, count=c1"),
		spec.NewPart("en=false, count=c2"),
		hl.OutputN(8, func(v uint64) { c1 = v })("in=c1"),
		hl.OutputN(8, func(v uint64) { c2 = v })("in=c2"),
	)
	if err != nil {
		t.Fatal(err)
	}
	c.Run(6)
	// the probe lags one step behind the counters.
	if c1 != 15 || c2 != 10 {
		t.Fatalf("expected c1=15, c2=10, got c1=%d, c2=%d", c1, c2)
	}
}

type badPart struct {
	In bool `hw:"in"`
}

func (*badPart) Update(*hw.Circuit) {}

func Test_MakePart_bad_field(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	hw.MakePart((*badPart)(nil))
}
