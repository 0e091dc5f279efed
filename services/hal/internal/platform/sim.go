package platform

import (
	"errors"
	"sync"
)

// ErrNack is returned by SimSensor for transactions it does not acknowledge.
var ErrNack = errors.New("i2c: nack")

// SimSensor emulates the OV5647 register file behind a drivers.I2C bus. It
// speaks 16-bit register addresses with an auto-incrementing pointer: a
// 3-byte write stores one value, a 2-byte write sets the pointer and a
// following read returns bytes from it.
type SimSensor struct {
	mu    sync.Mutex
	addr  uint16
	regs  map[uint16]byte
	ptr   uint16
	fail  map[uint16]bool
	failW map[regValue]bool
	gate  func() bool
	txs   int
	reset int
	id    [2]byte
}

type regValue struct {
	reg uint16
	val byte
}

// NewSimSensor creates a sensor answering at addr (0x36 when zero) with the
// OV5647 chip id.
func NewSimSensor(addr uint16) *SimSensor {
	if addr == 0 {
		addr = 0x36
	}
	s := &SimSensor{addr: addr, fail: map[uint16]bool{}, failW: map[regValue]bool{}, id: [2]byte{0x56, 0x47}}
	s.loadDefaults()
	return s
}

func (s *SimSensor) loadDefaults() {
	s.regs = map[uint16]byte{
		0x300A: s.id[0],
		0x300B: s.id[1],
		0x0100: 0x00, // software standby
		0x3503: 0x00, // AEC/AGC auto
		0x5001: 0x01, // AWB on
		0x4800: 0x24,
		0x4814: 0x2A,
		0x300D: 0x01,
		0x4202: 0x0F,
	}
}

// GateOn makes the sensor NACK every transaction while fn returns false.
// Boards use it to tie the sensor to its XCLK.
func (s *SimSensor) GateOn(fn func() bool) {
	s.mu.Lock()
	s.gate = fn
	s.mu.Unlock()
}

// SetChipID changes the identity the sensor reports after its next reset.
func (s *SimSensor) SetChipID(hi, lo byte) {
	s.mu.Lock()
	s.id = [2]byte{hi, lo}
	s.regs[0x300A], s.regs[0x300B] = hi, lo
	s.mu.Unlock()
}

// FailReg makes every access to reg fail with ErrNack.
func (s *SimSensor) FailReg(reg uint16, fail bool) {
	s.mu.Lock()
	if fail {
		s.fail[reg] = true
	} else {
		delete(s.fail, reg)
	}
	s.mu.Unlock()
}

// FailWrite makes writes of exactly v to reg fail with ErrNack. Reads and
// other values are acknowledged.
func (s *SimSensor) FailWrite(reg uint16, v byte, fail bool) {
	s.mu.Lock()
	if fail {
		s.failW[regValue{reg, v}] = true
	} else {
		delete(s.failW, regValue{reg, v})
	}
	s.mu.Unlock()
}

// Reg returns the current value of reg.
func (s *SimSensor) Reg(reg uint16) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[reg]
}

// SetReg stores v without going through the bus.
func (s *SimSensor) SetReg(reg uint16, v byte) {
	s.mu.Lock()
	s.regs[reg] = v
	s.mu.Unlock()
}

// Transactions counts acknowledged and failed Tx calls addressed to the sensor.
func (s *SimSensor) Transactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txs
}

// Resets counts software resets.
func (s *SimSensor) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset
}

func (s *SimSensor) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if addr != s.addr {
		return ErrNack
	}
	s.txs++
	if s.gate != nil && !s.gate() {
		return ErrNack
	}
	switch {
	case len(w) == 1 || len(w) > 3:
		return ErrNack
	case len(w) >= 2:
		s.ptr = uint16(w[0])<<8 | uint16(w[1])
		if s.fail[s.ptr] {
			return ErrNack
		}
		if len(w) == 3 {
			if s.failW[regValue{s.ptr, w[2]}] {
				return ErrNack
			}
			s.write(s.ptr, w[2])
			s.ptr++
		}
	}
	for i := range r {
		if s.fail[s.ptr] {
			return ErrNack
		}
		r[i] = s.regs[s.ptr]
		s.ptr++
	}
	return nil
}

func (s *SimSensor) write(reg uint16, v byte) {
	if reg == 0x0103 && v&0x01 != 0 {
		s.reset++
		s.loadDefaults()
	}
	s.regs[reg] = v
}
