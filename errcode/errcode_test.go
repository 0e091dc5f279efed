package errcode

import (
	"errors"
	"testing"

	"sensorcode-go/drivers/ov5647"
)

func TestMapDriverErr(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{ov5647.ErrNotFound, NotFound},
		{&ov5647.IDError{Reg: 0x300A, Got: 0x55, Want: 0x56}, NotFound},
		{&ov5647.TransportError{Op: "write", Reg: 0x0100, Err: errors.New("nack")}, TransportError},
		{ov5647.ErrUnsupportedClock, ConfigError},
		{ov5647.ErrMissingResource, ConfigError},
		{ov5647.ErrNotPowered, NotPowered},
		{ov5647.ErrControlRange, OutOfRange},
		{ov5647.ErrReadOnly, ReadOnly},
		{ov5647.ErrUnknownControl, UnknownControl},
		{ov5647.ErrInvalidTarget, InvalidParams},
		{Busy, Busy},
		{errors.New("other"), Error},
	}
	for _, c := range cases {
		if got := MapDriverErr(c.err); got != c.want {
			t.Errorf("MapDriverErr(%v)=%q want %q", c.err, got, c.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap("power", ov5647.ErrNotFound)
	if Of(err) != NotFound {
		t.Fatalf("Of=%q", Of(err))
	}
	if !errors.Is(err, ov5647.ErrNotFound) {
		t.Fatal("cause lost")
	}
	if err.Error() != "power: not_found: ov5647: not found" {
		t.Fatalf("message %q", err.Error())
	}
	if Wrap("x", nil) != nil {
		t.Fatal("nil should stay nil")
	}
}
