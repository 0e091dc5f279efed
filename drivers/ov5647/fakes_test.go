package ov5647

import (
	"errors"
	"sync"
	"time"
)

var errNack = errors.New("nack")

type regOp struct {
	write bool
	addr  uint16
	val   byte
}

// fakeRegs is an in-memory register file that records every access.
type fakeRegs struct {
	mu     sync.Mutex
	regs   map[uint16]byte
	sticky map[uint16]byte // read value regardless of writes
	ops    []regOp
	failOn map[uint16]bool // fail any access to these registers
}

func newFakeRegs() *fakeRegs {
	return &fakeRegs{
		regs: map[uint16]byte{
			regChipIDHigh: chipIDHigh,
			regChipIDLow:  chipIDLow,
		},
		sticky: map[uint16]byte{},
		failOn: map[uint16]bool{},
	}
}

func (f *fakeRegs) ReadReg(addr uint16) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, regOp{addr: addr})
	if f.failOn[addr] {
		return 0, errNack
	}
	if v, ok := f.sticky[addr]; ok {
		return v, nil
	}
	return f.regs[addr], nil
}

func (f *fakeRegs) WriteReg(addr uint16, val byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, regOp{write: true, addr: addr, val: val})
	if f.failOn[addr] {
		return errNack
	}
	f.regs[addr] = val
	return nil
}

func (f *fakeRegs) get(addr uint16) byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[addr]
}

func (f *fakeRegs) set(addr uint16, v byte) {
	f.mu.Lock()
	f.regs[addr] = v
	f.mu.Unlock()
}

func (f *fakeRegs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ops)
}

func (f *fakeRegs) writes() []regOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []regOp
	for _, op := range f.ops {
		if op.write {
			out = append(out, op)
		}
	}
	return out
}

func (f *fakeRegs) reset() {
	f.mu.Lock()
	f.ops = nil
	f.mu.Unlock()
}

type fakeClock struct {
	mu        sync.Mutex
	rate      uint32
	enabled   bool
	enables   int
	disables  int
	enableErr error
}

func (c *fakeClock) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enableErr != nil {
		return c.enableErr
	}
	c.enabled = true
	c.enables++
	return nil
}

func (c *fakeClock) Disable() {
	c.mu.Lock()
	c.enabled = false
	c.disables++
	c.mu.Unlock()
}

func (c *fakeClock) Rate() uint32 { return c.rate }

func (c *fakeClock) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enables, c.disables
}

type fakePin struct {
	mu    sync.Mutex
	level bool
	sets  int
}

func (p *fakePin) Set(v bool) {
	p.mu.Lock()
	p.level = v
	p.sets++
	p.mu.Unlock()
}

type rig struct {
	dev    *Device
	regs   *fakeRegs
	clk    *fakeClock
	pin    *fakePin
	mu     sync.Mutex
	events []Event
}

func newRig(cfg Config) *rig {
	r := &rig{regs: newFakeRegs(), clk: &fakeClock{rate: ClockRateHz}, pin: &fakePin{}}
	cfg.OnEvent = func(ev Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	}
	r.dev = New(r.regs, r.clk, ResetFromPin(r.pin, true), cfg)
	r.dev.sleep = func(time.Duration) {}
	return r
}

func (r *rig) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func (r *rig) has(k EventKind) bool {
	for _, got := range r.kinds() {
		if got == k {
			return true
		}
	}
	return false
}
