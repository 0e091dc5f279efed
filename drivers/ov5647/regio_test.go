package ov5647

import (
	"bytes"
	"errors"
	"testing"
)

type tx struct {
	addr uint16
	w    []byte
	rlen int
}

type fakeI2C struct {
	txs   []tx
	resp  byte
	fail  error
	failN int // fail the Nth Tx (1-based), 0 = never
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.txs = append(f.txs, tx{addr: addr, w: append([]byte(nil), w...), rlen: len(r)})
	if f.failN != 0 && len(f.txs) == f.failN {
		return f.fail
	}
	for i := range r {
		r[i] = f.resp
	}
	return nil
}

func TestI2CTransportWrite(t *testing.T) {
	bus := &fakeI2C{}
	tr := NewI2CTransport(bus, 0)
	if tr.Address() != AddressDefault {
		t.Fatalf("addr %#x", tr.Address())
	}
	if err := tr.WriteReg(0x300A, 0x5A); err != nil {
		t.Fatal(err)
	}
	if len(bus.txs) != 1 {
		t.Fatalf("tx count %d", len(bus.txs))
	}
	got := bus.txs[0]
	if got.addr != 0x36 || !bytes.Equal(got.w, []byte{0x30, 0x0A, 0x5A}) || got.rlen != 0 {
		t.Fatalf("write tx %+v", got)
	}
}

func TestI2CTransportRead(t *testing.T) {
	bus := &fakeI2C{resp: 0x56}
	tr := NewI2CTransport(bus, 0x37)
	v, err := tr.ReadReg(0x300A)
	if err != nil || v != 0x56 {
		t.Fatalf("read %#x %v", v, err)
	}
	if len(bus.txs) != 2 {
		t.Fatalf("read should be two transactions, got %d", len(bus.txs))
	}
	if a := bus.txs[0]; a.addr != 0x37 || !bytes.Equal(a.w, []byte{0x30, 0x0A}) || a.rlen != 0 {
		t.Fatalf("address phase %+v", a)
	}
	if d := bus.txs[1]; len(d.w) != 0 || d.rlen != 1 {
		t.Fatalf("data phase %+v", d)
	}
}

func TestI2CTransportErrors(t *testing.T) {
	nack := errors.New("nack")
	bus := &fakeI2C{fail: nack, failN: 2}
	tr := NewI2CTransport(bus, 0)
	_, err := tr.ReadReg(0x0100)
	var te *TransportError
	if !errors.As(err, &te) || te.Op != "read" || te.Reg != 0x0100 {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, ErrTransport) || !errors.Is(err, nack) {
		t.Fatal("error chain broken")
	}
	if err.Error() != "ov5647: read reg 0x0100: nack" {
		t.Fatalf("message %q", err.Error())
	}
}

func TestSequencerStopsAtFirstFailure(t *testing.T) {
	regs := newFakeRegs()
	regs.failOn[0x3001] = true
	s := NewSequencer(regs)
	err := s.Apply(oeEnableSeq)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("got %v", err)
	}
	w := regs.writes()
	if len(w) != 2 || w[0].addr != 0x3000 || w[1].addr != 0x3001 {
		t.Fatalf("writes %+v", w)
	}
	// earlier writes are not rolled back
	if regs.get(0x3000) != 0x0F {
		t.Fatal("first write rolled back")
	}
}

func TestSequencerUpdate(t *testing.T) {
	regs := newFakeRegs()
	regs.set(0x4814, 0xFF)
	s := NewSequencer(regs)
	if err := s.Update(0x4814, vcMask, 1<<vcShift); err != nil {
		t.Fatal(err)
	}
	if got := regs.get(0x4814); got != 0x7F {
		t.Fatalf("0x4814=%#x", got)
	}
}

func TestDebugRegisterAccess(t *testing.T) {
	r := newRig(Config{})
	if err := r.dev.WriteRegister(0x5001, 0x00); err != nil {
		t.Fatal(err)
	}
	if v, err := r.dev.ReadRegister(0x5001); err != nil || v != 0 {
		t.Fatalf("read %#x %v", v, err)
	}
	if v, _ := r.dev.Registers().Read(regChipIDLow); v != chipIDLow {
		t.Fatalf("full 16-bit address not used: %#x", v)
	}
}
