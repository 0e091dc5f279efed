// Package ov5647 provides a control-plane driver for the OmniVision OV5647
// image sensor.
//
// Design notes (datasheet and vendor references):
// • SCCB/I2C, 16-bit register address, 8-bit data; default 7-bit address 0x36.
// • Modes are fixed register tables applied in order after a software reset.
// • Power is reference counted; the first Acquire clocks, releases reset and
// configures the selected mode; the last Release parks the sensor.
// • Streaming toggles the MIPI clock lane between LP-11 idle and active.
// • Exposure (20-bit, driven as 16-bit) and gain (10-bit) span several registers.
//
// The driver performs no logging; Config.OnEvent receives structured events.
package ov5647

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"sensorcode-go/x/conv"
)

// I2C address (7-bit).
const AddressDefault = 0x36

// XCLK rate the register tables were tuned against.
const ClockRateHz = 25_000_000

const defaultSettle = 5 * time.Millisecond

var (
	// ErrNotFound means the chip did not identify as an OV5647.
	ErrNotFound = errors.New("ov5647: not found")
	// ErrTransport marks every register read/write failure.
	ErrTransport = errors.New("ov5647: transport error")
	// ErrNotPowered is returned by operations that need a clocked sensor.
	ErrNotPowered = errors.New("ov5647: not powered")

	// Configuration errors (fatal at attach).
	ErrUnsupportedClock = errors.New("ov5647: unsupported clock frequency")
	ErrMissingResource  = errors.New("ov5647: missing required resource")

	ErrControlRange   = errors.New("ov5647: control value out of range")
	ErrUnknownControl = errors.New("ov5647: unknown control")
	ErrReadOnly       = errors.New("ov5647: control is read-only")
	ErrInvalidTarget  = errors.New("ov5647: invalid selection target")
)

// TransportError wraps a failed register access.
type TransportError struct {
	Op  string // "read" | "write"
	Reg uint16
	Err error
}

func (e *TransportError) Error() string {
	var b [4]byte
	msg := "ov5647: " + e.Op + " reg 0x" + string(conv.Hex16(b[:], e.Reg))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// IDError reports a chip identifier mismatch.
type IDError struct {
	Reg       uint16
	Got, Want byte
}

func (e *IDError) Error() string {
	var r [4]byte
	var g, w [2]byte
	return "ov5647: id reg 0x" + string(conv.Hex16(r[:], e.Reg)) +
		" expected 0x" + string(conv.Hex8(w[:], e.Want)) +
		" got 0x" + string(conv.Hex8(g[:], e.Got))
}

func (e *IDError) Is(target error) bool { return target == ErrNotFound }

// Config controls non-register behaviour. All fields are optional.
type Config struct {
	// Settle is the wait after clock enable and after reset release.
	// Default 5 ms.
	Settle time.Duration
	// VirtualChannel is the CSI-2 channel (0..3) assigned after each mode apply.
	VirtualChannel uint8
	// InitialMode indexes Modes(); out-of-range values fall back to 0.
	InitialMode int
	// OnEvent, if set, is called synchronously for every driver event.
	// It must not call back into the Device.
	OnEvent func(Event)
}

// DefaultConfig returns the defaults used by New (5 ms settle).
func DefaultConfig() Config {
	return Config{Settle: defaultSettle}
}

// Device is one OV5647 instance with its injected capabilities.
type Device struct {
	regs  Sequencer
	clk   Clock
	reset ResetLine // optional

	settle  time.Duration
	vc      uint8
	onEvent func(Event)
	sleep   func(time.Duration)

	// mu guards power and mode.
	mu    sync.Mutex
	power PowerState
	mode  int

	// Advisory flags for lock-free paths (streaming, controls).
	powered   atomic.Bool
	streaming atomic.Bool
}

// New constructs a Device. It does not touch the hardware; call Attach.
// reset may be nil when the board has no reset line.
func New(t Transport, clk Clock, reset ResetLine, cfg Config) *Device {
	if cfg.Settle <= 0 {
		cfg.Settle = defaultSettle
	}
	mode := cfg.InitialMode
	if mode < 0 || mode >= len(modes) {
		mode = 0
	}
	return &Device{
		regs:    Sequencer{t: t},
		clk:     clk,
		reset:   reset,
		settle:  cfg.Settle,
		vc:      cfg.VirtualChannel & 0x03,
		onEvent: cfg.OnEvent,
		sleep:   time.Sleep,
		mode:    mode,
		power:   PowerState{ResetAsserted: true},
	}
}

// Registers exposes the sequencer for callers that need raw access.
func (d *Device) Registers() Sequencer { return d.regs }

// ReadRegister reads one register (debug access).
func (d *Device) ReadRegister(addr uint16) (byte, error) { return d.regs.Read(addr) }

// WriteRegister writes one register (debug access).
func (d *Device) WriteRegister(addr uint16, val byte) error { return d.regs.Write(addr, val) }

func (d *Device) emit(ev Event) {
	if d.onEvent != nil {
		d.onEvent(ev)
	}
}
