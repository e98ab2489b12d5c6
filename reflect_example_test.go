package hwserial_test

import (
	"fmt"

	hw "github.com/db47h/hwserial"
	hl "github.com/db47h/hwserial/hwlib"
)

// mux4 is a custom 4 bits mux.
//
type mux4Impl struct {
	A   [4]int `hw:"in"`     // input bus "a"
	B   [4]int `hw:"in"`     // input bus "b"
	S   int    `hw:"in,sel"` // single pin, the second tag value forces the pin name to "sel"
	Out [4]int `hw:"out"`    // output bus "out"
}

// Update implements Updater.
//
func (m *mux4Impl) Update(c *hw.Circuit) {
	if c.Get(m.S) {
		c.SetInt(m.Out[:], c.GetInt(m.B[:]))
	} else {
		c.SetInt(m.Out[:], c.GetInt(m.A[:]))
	}
}

// no need to import reflect, just cast a nil pointer to mux4
var m4Spec = hw.MakePart((*mux4Impl)(nil))

// m4Spec is the *PartSpec for our mux4. In order to use it like the built-ins
// in hwlib, we need to get its NewPartFn method as a variable, or make it a function:
func Mux4(c string) hw.Part { return m4Spec.NewPart(c) }

// MakePart example with a custom Mux4
func ExampleMakePart() {
	var a, b, out uint64
	var sel bool
	c, err := hw.NewCircuit(0,
		// IOs to test the circuit
		hl.InputN(4, func() uint64 { return a })("out=in_a"),
		hl.InputN(4, func() uint64 { return b })("out=in_b"),
		hl.Input(func() bool { return sel })("out=in_sel"),
		// our custom Mux4
		Mux4("a=in_a, b=in_b, sel=in_sel, out=mux_out"),
		// IOs continued...
		hl.OutputN(4, func(v uint64) { out = v })("in=mux_out"),
	)
	if err != nil {
		panic(err)
	}

	a, b, sel = 1, 15, false
	c.Run(3)
	fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", a, b, sel, out)
	sel = true
	c.Run(3)
	fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", a, b, sel, out)

	// Output:
	// a=1, b=15, sel=false => out=1
	// a=1, b=15, sel=true => out=15
}
