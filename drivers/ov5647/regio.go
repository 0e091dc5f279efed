package ov5647

import (
	"sync"

	"tinygo.org/x/drivers"
)

// Transport is the register command channel consumed by the driver.
type Transport interface {
	ReadReg(addr uint16) (byte, error)
	WriteReg(addr uint16, val byte) error
}

// I2CTransport carries 16-bit-address/8-bit-data accesses over an I2C bus.
//
// Reads are an address write followed by a separate one-byte read (SCCB does
// not require a repeated start). The mutex keeps that pair atomic with respect
// to other callers sharing this transport.
type I2CTransport struct {
	bus  drivers.I2C
	addr uint16
	mu   sync.Mutex
}

// NewI2CTransport binds a transport to a device address (0 => AddressDefault).
func NewI2CTransport(bus drivers.I2C, addr uint16) *I2CTransport {
	if addr == 0 {
		addr = AddressDefault
	}
	return &I2CTransport{bus: bus, addr: addr}
}

// Address returns the 7-bit device address in use.
func (t *I2CTransport) Address() uint16 { return t.addr }

func (t *I2CTransport) WriteReg(reg uint16, val byte) error {
	w := [3]byte{byte(reg >> 8), byte(reg), val}
	t.mu.Lock()
	err := t.bus.Tx(t.addr, w[:], nil)
	t.mu.Unlock()
	if err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func (t *I2CTransport) ReadReg(reg uint16) (byte, error) {
	w := [2]byte{byte(reg >> 8), byte(reg)}
	var r [1]byte
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.bus.Tx(t.addr, w[:], nil); err != nil {
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	if err := t.bus.Tx(t.addr, nil, r[:]); err != nil {
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	return r[0], nil
}

// Sequencer plays register sequences against a Transport.
// It never reorders, deduplicates or retries writes.
type Sequencer struct {
	t Transport
}

// NewSequencer wraps a transport.
func NewSequencer(t Transport) Sequencer { return Sequencer{t: t} }

// Apply writes seq in order and stops at the first failure. Earlier writes
// are not rolled back.
func (s Sequencer) Apply(seq []RegisterOp) error {
	for _, op := range seq {
		if err := s.Write(op.Addr, op.Val); err != nil {
			return err
		}
	}
	return nil
}

func (s Sequencer) Read(addr uint16) (byte, error) {
	v, err := s.t.ReadReg(addr)
	if err != nil {
		return 0, asTransportErr("read", addr, err)
	}
	return v, nil
}

func (s Sequencer) Write(addr uint16, val byte) error {
	if err := s.t.WriteReg(addr, val); err != nil {
		return asTransportErr("write", addr, err)
	}
	return nil
}

// Update is a read-modify-write: new = (old &^ clear) | set.
func (s Sequencer) Update(addr uint16, clear, set byte) error {
	v, err := s.Read(addr)
	if err != nil {
		return err
	}
	return s.Write(addr, (v&^clear)|set)
}

// Transports other than I2CTransport may return plain errors.
func asTransportErr(op string, addr uint16, err error) error {
	if _, ok := err.(*TransportError); ok {
		return err
	}
	return &TransportError{Op: op, Reg: addr, Err: err}
}
