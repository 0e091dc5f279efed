// Package drvshim adapts platform buses to the drivers.I2C shape.
package drvshim

import (
	"sync"

	"tinygo.org/x/drivers"
)

// I2C serialises transactions from every device sharing one physical bus.
// A register read is two transactions; drivers that need them adjacent
// hold their own lock around the pair.
type I2C struct {
	mu  *sync.Mutex
	raw drivers.I2C
	n   *uint64
}

// NewI2C wraps a raw bus. Copies share the same lock.
func NewI2C(raw drivers.I2C) I2C {
	return I2C{mu: new(sync.Mutex), raw: raw, n: new(uint64)}
}

func (s I2C) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.n++
	return s.raw.Tx(addr, w, r)
}

// Transactions returns the number of Tx calls made through the shim.
func (s I2C) Transactions() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.n
}

// Raw returns the wrapped bus.
func (s I2C) Raw() drivers.I2C { return s.raw }
