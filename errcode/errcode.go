// Package errcode defines the stable error codes carried in bus replies.
package errcode

import (
	"errors"

	"sensorcode-go/drivers/ov5647"
)

// Code is a stable, bus-facing error identifier. It implements error so it
// can be returned directly from adaptors.
type Code string

func (c Code) Error() string { return string(c) }

const (
	OK                Code = "ok"
	Busy              Code = "busy"
	Unsupported       Code = "unsupported"
	InvalidParams     Code = "invalid_params"
	InvalidPayload    Code = "invalid_payload"
	UnknownCapability Code = "unknown_capability"
	HALNotReady       Code = "hal_not_ready"
	InvalidTopic      Code = "invalid_topic"

	UnknownBus Code = "unknown_bus"
	UnknownPin Code = "unknown_pin"
	Timeout    Code = "timeout"

	// Sensor codes.
	NotFound       Code = "not_found"
	TransportError Code = "transport_error"
	ConfigError    Code = "config_error"
	NotPowered     Code = "not_powered"
	OutOfRange     Code = "out_of_range"
	ReadOnly       Code = "read_only"
	UnknownControl Code = "unknown_control"

	Error Code = "error" // generic fallback
)

// E wraps a cause with a code and optional operation context.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches a code derived from err (see MapDriverErr) and an operation name.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: MapDriverErr(err), Op: op, Msg: err.Error(), Err: err}
}

// Of extracts a Code from an error chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps sensor driver errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ov5647.ErrNotFound):
		return NotFound
	case errors.Is(err, ov5647.ErrTransport):
		return TransportError
	case errors.Is(err, ov5647.ErrUnsupportedClock), errors.Is(err, ov5647.ErrMissingResource):
		return ConfigError
	case errors.Is(err, ov5647.ErrNotPowered):
		return NotPowered
	case errors.Is(err, ov5647.ErrControlRange):
		return OutOfRange
	case errors.Is(err, ov5647.ErrReadOnly):
		return ReadOnly
	case errors.Is(err, ov5647.ErrUnknownControl):
		return UnknownControl
	case errors.Is(err, ov5647.ErrInvalidTarget):
		return InvalidParams
	}
	return Of(err)
}
