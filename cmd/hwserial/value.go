// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// parseValue parses a non negative integer in decimal, hexadecimal (0x
// prefix) or binary (0b prefix) notation. The value may be arbitrarily large.
//
func parseValue(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	base := 10
	digits := s
	switch {
	case s == "":
		return nil, errors.New("empty value")
	case strings.HasPrefix(s, "0x"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0b"):
		base, digits = 2, s[2:]
	}
	if digits == "" {
		return nil, errors.Errorf("value missing from %q", s)
	}
	if digits[0] == '+' || digits[0] == '-' || strings.ContainsRune(digits, '_') {
		return nil, errors.Errorf("invalid value %q", s)
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, errors.Errorf("invalid base %d value %q", base, s)
	}
	return v, nil
}

// encode returns the little endian representation of v in the minimum number
// of bytes, at least one.
//
func encode(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		return []byte{0}
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// parseBytes parses and encodes all values in args.
//
func parseBytes(args []string) ([]byte, error) {
	var out []byte
	for _, a := range args {
		v, err := parseValue(a)
		if err != nil {
			return nil, err
		}
		out = append(out, encode(v)...)
	}
	return out, nil
}
