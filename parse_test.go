package hwserial_test

import (
	"reflect"
	"testing"

	hw "github.com/db47h/hwserial"
)

func TestIO(t *testing.T) {
	got := hw.IO("a, data[3],sel")
	exp := []string{"a", "data[0]", "data[1]", "data[2]", "sel"}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}

func TestParseConnections(t *testing.T) {
	data := []struct {
		in  string
		exp []hw.Connection
		err bool
	}{
		{"", nil, false},
		{"a=b", []hw.Connection{{"a", "b"}}, false},
		{" a = b , out[ 0 .. 3 ]=bus[4..7], x[1]=true",
			[]hw.Connection{{"a", "b"}, {"out[0..3]", "bus[4..7]"}, {"x[1]", "true"}}, false},
		{"a", nil, true},
		{"a=", nil, true},
		{"a=b c=d", nil, true},
		{"a[=b", nil, true},
		{"a[1.3]=b", nil, true},
		{"1a=b", nil, true},
	}
	for _, d := range data {
		got, err := hw.ParseConnections(d.in)
		if d.err {
			if err == nil {
				t.Errorf("%q: expected error", d.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", d.in, err)
			continue
		}
		if !reflect.DeepEqual(got, d.exp) {
			t.Errorf("%q: expected %v, got %v", d.in, d.exp, got)
		}
	}
}

func TestIO_panic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	hw.IO("a[")
}
