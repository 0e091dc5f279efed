// Package platform supplies the host-side buses, pins and clocks the HAL
// builds devices against. The I²C bus carries a simulated OV5647 so the
// whole stack runs without hardware.
package platform

import (
	"sync"

	"sensorcode-go/services/hal/internal/drvshim"
	"sensorcode-go/services/hal/internal/halcore"

	"tinygo.org/x/drivers"
)

// ----------------------------- I²C (host) ------------------------------------

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// NewI2CFactory serves the given raw buses, each behind a serialising shim.
func NewI2CFactory(raw map[string]drivers.I2C) halcore.I2CBusFactory {
	f := &hostI2CFactory{buses: make(map[string]drivers.I2C, len(raw))}
	for id, b := range raw {
		f.buses[id] = drvshim.NewI2C(b)
	}
	return f
}

// ----------------------------- Clocks (host) ---------------------------------

// FixedClock is a gateable clock with a fixed rate.
type FixedClock struct {
	mu       sync.Mutex
	rate     uint32
	on       bool
	enables  int
	disables int
	err      error
}

func NewFixedClock(hz uint32) *FixedClock { return &FixedClock{rate: hz} }

func (c *FixedClock) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.on = true
	c.enables++
	return nil
}

func (c *FixedClock) Disable() {
	c.mu.Lock()
	c.on = false
	c.disables++
	c.mu.Unlock()
}

func (c *FixedClock) Rate() uint32 { return c.rate }

// Enabled reports whether the clock is running.
func (c *FixedClock) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

// Counts returns how often the clock was enabled and disabled.
func (c *FixedClock) Counts() (enables, disables int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enables, c.disables
}

// FailEnable makes the next Enable calls return err (nil clears).
func (c *FixedClock) FailEnable(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

type clockFactory map[string]halcore.Clock

func (f clockFactory) ByID(id string) (halcore.Clock, bool) {
	c, ok := f[id]
	return c, ok
}

// NewClockFactory serves the given clocks by id.
func NewClockFactory(clocks map[string]halcore.Clock) halcore.ClockFactory {
	f := clockFactory{}
	for id, c := range clocks {
		f[id] = c
	}
	return f
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	history []bool
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.history = append(p.history, level)
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports whether ConfigureOutput was called.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// History returns every level passed to Set.
func (p *FakePin) History() []bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]bool(nil), p.history...)
}

// HostPinFactory returns stable *FakePin instances per number in [0, max).
type HostPinFactory struct {
	mu   sync.Mutex
	max  int
	pins map[int]*FakePin
}

func NewPinFactory(max int) *HostPinFactory {
	return &HostPinFactory{max: max, pins: make(map[int]*FakePin)}
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	p, ok := f.Get(n)
	return p, ok
}

// Get exposes the underlying *FakePin for tests.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n < 0 || (f.max > 0 && n >= f.max) {
		return nil, false
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// ----------------------------- Board -----------------------------------------

// Board is the host's resource set: one simulated sensor on "i2c0", XCLK
// "xclk0" at 25 MHz, a spare 24 MHz "xclk1" and 30 GPIOs.
type Board struct {
	Sensor *SimSensor
	XCLK   *FixedClock
	Pins   *HostPinFactory

	Buses  halcore.I2CBusFactory
	Clocks halcore.ClockFactory
}

// NewHostBoard wires the simulator to xclk0 so it only answers while clocked.
func NewHostBoard() *Board {
	sensor := NewSimSensor(0)
	xclk0 := NewFixedClock(25_000_000)
	sensor.GateOn(xclk0.Enabled)
	pins := NewPinFactory(30)
	return &Board{
		Sensor: sensor,
		XCLK:   xclk0,
		Pins:   pins,
		Buses:  NewI2CFactory(map[string]drivers.I2C{"i2c0": sensor}),
		Clocks: NewClockFactory(map[string]halcore.Clock{
			"xclk0": xclk0,
			"xclk1": NewFixedClock(24_000_000),
		}),
	}
}
