// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwserial

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// field name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Buses must be arrays of int.
//
// t must be a pointer to a struct. If t is not nil, every mounted instance
// starts as a copy of *t, pin fields excepted: this is how parts carry their
// construction time configuration and initial state. Untagged fields are
// copied by value, so they must not share mutable state through pointers,
// slices or maps.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for MakePart", typ))
	}
	var proto reflect.Value
	if v := reflect.ValueOf(t); !v.IsNil() {
		proto = v.Elem()
	}
	typ = typ.Elem()

	sp := &PartSpec{
		Name: typ.Name(),
	}

	for _, f := range pinFields(typ) {
		var names []string
		if f.bus < 0 {
			names = []string{f.pin}
		} else {
			for i := 0; i < f.bus; i++ {
				names = append(names, BusPinName(f.pin, i))
			}
		}
		if f.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}
	sp.Mount = mountPart(typ, proto)
	return sp
}

type pinField struct {
	index int
	pin   string
	input bool
	bus   int // bus width or -1 for single pins
}

func pinFields(typ reflect.Type) []pinField {
	var fs []pinField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, pin: strings.ToLower(f.Name), bus: -1}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.pin = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bus = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
		fs = append(fs, pf)
	}
	return fs
}

func mountPart(typ reflect.Type, proto reflect.Value) MountFn {
	fields := pinFields(typ)
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		if proto.IsValid() {
			e.Set(proto)
		}
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bus < 0 {
				fv.SetInt(int64(s.Pin(f.pin)))
				continue
			}
			for i := 0; i < f.bus; i++ {
				fv.Index(i).SetInt(int64(s.Pin(f.pin + "[" + strconv.Itoa(i) + "]")))
			}
		}

		comp := v.Interface().(Updater)
		return []Component{comp.Update}
	}
}
