// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwserial

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection connects a part pin (PP) to a pin of its host chip (CP).
// Either side may be a single pin "a", an indexed pin "a[3]" or a pin range
// "a[0..3]".
//
type Connection struct {
	PP string
	CP string
}

// IO expands a pin specification string into individual pin names, expanding
// bus declarations. It panics on malformed input.
//
//	IO("a, data[2], sel") // returns []string{"a", "data[0]", "data[1]", "sel"}
//
func IO(spec string) []string {
	pins, err := parseIOspec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// ParseConnections parses a connection configuration string like
// "a=in, out[0..3]=bus[4..7]" and returns the list of connections in the
// order in which they appear. An empty string yields an empty list.
//
func ParseConnections(conns string) ([]Connection, error) {
	var out []Connection
	sc := scanner{in: conns}
	if sc.eof() {
		return nil, nil
	}
	for {
		pp, err := sc.pin()
		if err != nil {
			return nil, err
		}
		if !sc.accept('=') {
			return nil, sc.errorf("expected '='")
		}
		cp, err := sc.pin()
		if err != nil {
			return nil, err
		}
		out = append(out, Connection{PP: pp, CP: cp})
		if sc.eof() {
			return out, nil
		}
		if !sc.accept(',') {
			return nil, sc.errorf("expected comma or end of input")
		}
	}
}

// parseIOspec parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
//
func parseIOspec(names string) ([]string, error) {
	var out []string
	sc := scanner{in: names}
	if sc.eof() {
		return nil, nil
	}
	for {
		name, err := sc.ident()
		if err != nil {
			return nil, err
		}
		if sc.accept('[') {
			cnt, err := sc.number()
			if err != nil {
				return nil, sc.errorf("missing bus size")
			}
			if !sc.accept(']') {
				return nil, sc.errorf("missing close bracket")
			}
			for i := 0; i < cnt; i++ {
				out = append(out, BusPinName(name, i))
			}
		} else {
			out = append(out, name)
		}
		if sc.eof() {
			return out, nil
		}
		if !sc.accept(',') {
			return nil, sc.errorf("expected comma or end of input")
		}
	}
}

// scanner is a tiny hand written scanner for pin lists.
//
type scanner struct {
	in  string
	pos int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.in) && (s.in[s.pos] == ' ' || s.in[s.pos] == '\t' || s.in[s.pos] == '\n') {
		s.pos++
	}
}

func (s *scanner) eof() bool {
	s.skipSpace()
	return s.pos >= len(s.in)
}

func (s *scanner) accept(b byte) bool {
	s.skipSpace()
	if s.pos < len(s.in) && s.in[s.pos] == b {
		s.pos++
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func (s *scanner) ident() (string, error) {
	s.skipSpace()
	start := s.pos
	if s.pos >= len(s.in) || !isLetter(s.in[s.pos]) {
		return "", s.errorf("expected pin name")
	}
	for s.pos < len(s.in) && (isLetter(s.in[s.pos]) || isDigit(s.in[s.pos])) {
		s.pos++
	}
	return s.in[start:s.pos], nil
}

func (s *scanner) number() (int, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.in) && isDigit(s.in[s.pos]) {
		s.pos++
	}
	if start == s.pos {
		return 0, s.errorf("integer value expected")
	}
	return strconv.Atoi(s.in[start:s.pos])
}

// pin scans a pin name with an optional index or range and returns it
// normalized, without white space.
//
func (s *scanner) pin() (string, error) {
	name, err := s.ident()
	if err != nil {
		return "", err
	}
	if !s.accept('[') {
		return name, nil
	}
	start, err := s.number()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(start))
	if s.accept('.') {
		if !s.accept('.') {
			return "", s.errorf("expected '..'")
		}
		end, err := s.number()
		if err != nil {
			return "", s.errorf("integer value expected after '..'")
		}
		b.WriteString("..")
		b.WriteString(strconv.Itoa(end))
	}
	if !s.accept(']') {
		return "", s.errorf("closing ']' expected after index or range")
	}
	b.WriteByte(']')
	return b.String(), nil
}

func (s *scanner) errorf(msg string) error {
	return errors.Errorf("in %q at pos %d: %s", s.in, s.pos+1, msg)
}

// expandRange expands a pin range like "a[2..4]" to individual pin names.
// Single pins and indexed pins are returned as is.
//
func expandRange(name string) ([]string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	n = n[i+2:]
	i = strings.IndexByte(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in bus range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Errorf("invalid bus range %s", name)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}
