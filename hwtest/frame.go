// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

// Frame returns the line levels of a UART frame carrying b: a low start bit,
// 8 data bits LSB first and a high stop bit.
//
func Frame(b byte) []bool {
	f := make([]bool, 0, 10)
	f = append(f, false)
	for i := uint(0); i < 8; i++ {
		f = append(f, b&(1<<i) != 0)
	}
	return append(f, true)
}

// Line expands a sequence of bits into per step line levels, holding each
// bit for bitTicks steps.
//
func Line(bits []bool, bitTicks int) []bool {
	l := make([]bool, 0, len(bits)*bitTicks)
	for _, b := range bits {
		for i := 0; i < bitTicks; i++ {
			l = append(l, b)
		}
	}
	return l
}

// Idle returns n high line levels.
//
func Idle(n int) []bool {
	l := make([]bool, n)
	for i := range l {
		l[i] = true
	}
	return l
}
