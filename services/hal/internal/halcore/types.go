// Package halcore holds the contracts shared by the HAL service, its
// workers, device builders and platform factories.
package halcore

import (
	"context"
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Reading is one datum for one capability kind.
type Reading struct {
	Kind    string // e.g. "camera"
	Payload any    // JSON-serialisable
	TsMs    int64  // producer timestamp (ms)
}

// Sample is a batch collected together.
type Sample []Reading

// CapInfo describes one capability's retained info document.
type CapInfo struct {
	Kind string
	Info any
}

// Adaptor abstracts a concrete device driver. It must not own goroutines
// or touch the bus; the service and workers drive it.
type Adaptor interface {
	ID() string
	Capabilities() []CapInfo
	// Split-phase read: Trigger starts a cycle and says when to Collect.
	Trigger(ctx context.Context) (collectAfter time.Duration, err error)
	Collect(ctx context.Context) (Sample, error)
	// Device-specific control verbs. Unknown verbs return ErrUnsupported.
	Control(kind, method string, payload any) (result any, err error)
	// Close releases the hardware when the device leaves the config.
	Close() error
}

// DeviceEvent is an asynchronous notification raised by an adaptor.
type DeviceEvent struct {
	DevID   string
	Kind    string // capability kind it belongs to
	Payload any
}

// EmitFunc forwards device events to the service. It must not block.
type EmitFunc func(DeviceEvent)

// WorkerConfig centralises timings and limits.
type WorkerConfig struct {
	TriggerTimeout time.Duration
	CollectTimeout time.Duration
	RetryBackoff   time.Duration
	MaxRetries     int
	InputQueueSize int
}

// MeasureReq asks a worker to service an adaptor.
type MeasureReq struct {
	ID      string
	Adaptor Adaptor
	Prio    bool // true for "read_now"
}

// Result is emitted by a worker.
type Result struct {
	ID     string
	Sample Sample
	Err    error
}

var (
	// ErrNotReady asks the worker to retry Collect after a backoff.
	ErrNotReady = errors.New("not ready")
	// ErrUnsupported is returned by Control for unknown verbs.
	ErrUnsupported = errors.New("unsupported")
)

// ---- Buses ----

// I2CBusFactory supplies configured I²C buses by id. It uses the TinyGo
// drivers.I2C interface so drivers build unchanged on MCU targets.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// ---- GPIO ----

type GPIOPin interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PinFactory supplies GPIO pins by number.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Clocks ----

// Clock is a gateable reference clock (sensor XCLK).
type Clock interface {
	Enable() error
	Disable()
	Rate() uint32
}

// ClockFactory supplies clocks by id.
type ClockFactory interface {
	ByID(id string) (Clock, bool)
}
