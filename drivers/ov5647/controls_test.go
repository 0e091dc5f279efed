package ov5647

import (
	"errors"
	"testing"
)

func TestControlsWhileOffAreSilent(t *testing.T) {
	r := newRig(Config{})
	for _, c := range []Control{
		AutoWhiteBalance(true), AutoGain(false), AutoExposure(false),
		Exposure(0x1234), Gain(0x2AB),
	} {
		if err := r.dev.ApplyControl(c); err != nil {
			t.Fatalf("%v: %v", c.ID, err)
		}
	}
	if n := r.regs.count(); n != 0 {
		t.Fatalf("controls while off issued %d accesses", n)
	}
}

func TestControlRangeCheckedFirst(t *testing.T) {
	r := newRig(Config{})
	cases := []struct {
		c    Control
		want error
	}{
		{Exposure(0), ErrControlRange},
		{Gain(15), ErrControlRange},
		{Gain(1024), ErrControlRange},
		{Control{ID: CtrlAutoGain, Value: 2}, ErrControlRange},
		{Control{ID: CtrlPixelRate, Value: 1}, ErrReadOnly},
		{Control{ID: 0}, ErrUnknownControl},
	}
	for _, c := range cases {
		if err := r.dev.ApplyControl(c.c); !errors.Is(err, c.want) {
			t.Fatalf("%v=%d: got %v want %v", c.c.ID, c.c.Value, err, c.want)
		}
	}
	if r.regs.count() != 0 {
		t.Fatal("rejected controls touched the bus")
	}
}

func TestExposureGainSplit(t *testing.T) {
	r := newRig(Config{})
	if err := r.dev.Acquire(); err != nil {
		t.Fatal(err)
	}
	r.regs.reset()
	if err := r.dev.ApplyControl(Exposure(0x1234)); err != nil {
		t.Fatal(err)
	}
	w := r.regs.writes()
	if len(w) != 3 || w[0].addr != regExposureHi || w[1].addr != regExposureMid || w[2].addr != regExposureLo {
		t.Fatalf("exposure write order %+v", w)
	}
	if hi, mid, lo := r.regs.get(0x3500), r.regs.get(0x3501), r.regs.get(0x3502); hi != 0x01 || mid != 0x23 || lo != 0x40 {
		t.Fatalf("exposure regs %02x %02x %02x", hi, mid, lo)
	}
	if v, err := r.dev.ReadExposure(); err != nil || v != 0x1234 {
		t.Fatalf("ReadExposure=%#x %v", v, err)
	}

	if err := r.dev.ApplyControl(Gain(0x2AB)); err != nil {
		t.Fatal(err)
	}
	if hi, lo := r.regs.get(0x350A), r.regs.get(0x350B); hi != 0x02 || lo != 0xAB {
		t.Fatalf("gain regs %02x %02x", hi, lo)
	}
	if v, err := r.dev.ReadGain(); err != nil || v != 0x2AB {
		t.Fatalf("ReadGain=%#x %v", v, err)
	}
}

func TestExposureExtremes(t *testing.T) {
	r := newRig(Config{})
	_ = r.dev.Acquire()
	for _, v := range []uint16{1, 0x000F, 0x0FF0, 0xFFFF} {
		if err := r.dev.ApplyControl(Exposure(v)); err != nil {
			t.Fatal(err)
		}
		if got, _ := r.dev.ReadExposure(); got != v {
			t.Fatalf("exposure %#x read back %#x", v, got)
		}
	}
}

func TestAutoFlagsReadModifyWrite(t *testing.T) {
	r := newRig(Config{})
	if err := r.dev.Acquire(); err != nil {
		t.Fatal(err)
	}
	r.regs.set(regAECAGC, 0x00)

	steps := []struct {
		c    Control
		want byte
	}{
		{AutoGain(false), 0x02},
		{AutoExposure(false), 0x03},
		{AutoGain(true), 0x01},
		{AutoExposure(true), 0x00},
	}
	for _, s := range steps {
		if err := r.dev.ApplyControl(s.c); err != nil {
			t.Fatal(err)
		}
		if got := r.regs.get(regAECAGC); got != s.want {
			t.Fatalf("%v=%d: 0x3503=%#x want %#x", s.c.ID, s.c.Value, got, s.want)
		}
	}

	// Bits outside AEC/AGC survive.
	r.regs.set(regAECAGC, 0xF0)
	_ = r.dev.ApplyControl(AutoExposure(false))
	if got := r.regs.get(regAECAGC); got != 0xF1 {
		t.Fatalf("0x3503=%#x", got)
	}
	if auto, err := r.dev.ReadAuto(CtrlAutoExposure); err != nil || auto {
		t.Fatalf("ReadAuto exposure=%v %v", auto, err)
	}
	if auto, err := r.dev.ReadAuto(CtrlAutoGain); err != nil || !auto {
		t.Fatalf("ReadAuto gain=%v %v", auto, err)
	}
}

func TestAutoWhiteBalance(t *testing.T) {
	r := newRig(Config{})
	_ = r.dev.Acquire()
	_ = r.dev.ApplyControl(AutoWhiteBalance(false))
	if r.regs.get(regISPCtrl01) != 0 {
		t.Fatal("AWB not cleared")
	}
	_ = r.dev.ApplyControl(AutoWhiteBalance(true))
	if on, _ := r.dev.ReadAuto(CtrlAutoWhiteBalance); !on {
		t.Fatal("AWB not set")
	}
}

func TestControlWriteFailureSurfaces(t *testing.T) {
	r := newRig(Config{})
	_ = r.dev.Acquire()
	r.regs.failOn[regExposureMid] = true
	r.regs.reset()
	err := r.dev.ApplyControl(Exposure(0x1234))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("got %v", err)
	}
	for _, op := range r.regs.writes() {
		if op.addr == regExposureLo {
			t.Fatal("write continued after failure")
		}
	}
}

func TestControlNames(t *testing.T) {
	for _, d := range ControlDescs() {
		if ParseControlID(d.Name) != d.ID {
			t.Fatalf("name %q does not round-trip", d.Name)
		}
	}
	if ParseControlID("nope") != 0 || ControlID(42).String() != "unknown" {
		t.Fatal("unknown names")
	}
}
