package ov5647

import (
	"errors"
	"testing"
)

func TestAttachDetects(t *testing.T) {
	r := newRig(Config{})
	if err := r.dev.Attach(); err != nil {
		t.Fatal(err)
	}
	want := []regOp{
		{write: true, addr: regSWReset, val: 0x01},
		{addr: regChipIDHigh},
		{addr: regChipIDLow},
		{write: true, addr: regSWReset, val: 0x00},
	}
	r.regs.mu.Lock()
	ops := append([]regOp(nil), r.regs.ops...)
	r.regs.mu.Unlock()
	if len(ops) != len(want) {
		t.Fatalf("attach ops %+v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d = %+v want %+v", i, ops[i], want[i])
		}
	}
	if !r.has(EventDetected) {
		t.Fatal("missing detected event")
	}
	if st := r.dev.State(); st.RefCount != 0 || st.ClockEnabled || !st.ResetAsserted {
		t.Fatalf("attach left device on: %+v", st)
	}
}

func TestAttachIDMismatch(t *testing.T) {
	r := newRig(Config{})
	r.regs.set(regChipIDHigh, 0x55)
	err := r.dev.Attach()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	var ide *IDError
	if !errors.As(err, &ide) || ide.Got != 0x55 || ide.Want != 0x56 {
		t.Fatalf("IDError %+v", ide)
	}
	if err.Error() != "ov5647: id reg 0x300A expected 0x56 got 0x55" {
		t.Fatalf("message %q", err.Error())
	}
	for _, op := range r.regs.writes() {
		if op.addr != regSWReset {
			t.Fatalf("mode configuration attempted: %+v", op)
		}
	}
	if r.has(EventModeApplied) {
		t.Fatal("mode applied after failed detection")
	}
	if _, dis := r.clk.counts(); dis != 1 {
		t.Fatal("clock left running")
	}
}

func TestAttachLowByteMismatch(t *testing.T) {
	r := newRig(Config{})
	r.regs.set(regChipIDLow, 0x46)
	if err := r.dev.Attach(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestAttachConfigErrors(t *testing.T) {
	r := newRig(Config{})
	r.clk.rate = 24_000_000
	if err := r.dev.Attach(); !errors.Is(err, ErrUnsupportedClock) {
		t.Fatalf("got %v", err)
	}
	if r.regs.count() != 0 {
		t.Fatal("bad clock must fail before any I/O")
	}
	d := New(newFakeRegs(), nil, nil, Config{})
	if err := d.Attach(); !errors.Is(err, ErrMissingResource) {
		t.Fatalf("got %v", err)
	}
}

func TestAttachTransportError(t *testing.T) {
	r := newRig(Config{})
	r.regs.failOn[regChipIDHigh] = true
	err := r.dev.Attach()
	if !errors.Is(err, ErrTransport) || errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestAttachWhilePoweredKeepsMode(t *testing.T) {
	r := newRig(Config{})
	if err := r.dev.Acquire(); err != nil {
		t.Fatal(err)
	}
	r.regs.reset()
	if err := r.dev.Attach(); err != nil {
		t.Fatal(err)
	}
	if n := r.regs.count(); n != 0 {
		t.Fatalf("attach on a powered sensor did %d register ops", n)
	}
	if st := r.dev.State(); st.RefCount != 1 || !st.ClockEnabled {
		t.Fatalf("state %+v", st)
	}
}
