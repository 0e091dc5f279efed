// Package halerr holds the HAL service's sentinel errors. Each is an
// errcode.Code, so errcode.Of recovers the reply code from a wrapped chain.
package halerr

import "sensorcode-go/errcode"

var (
	// Control plane
	ErrBusy           error = errcode.Busy
	ErrInvalidPeriod  error = errcode.Code("invalid_period")
	ErrInvalidCapAddr error = errcode.Code("invalid_capability_address")
	ErrUnknownCap     error = errcode.UnknownCapability
	ErrNoAdaptor      error = errcode.Code("no_adaptor")

	// Build
	ErrMissingBusRef error = errcode.Code("missing_bus_ref")
	ErrUnknownBus    error = errcode.UnknownBus
	ErrUnknownPin    error = errcode.UnknownPin
	ErrUnknownClock  error = errcode.Code("unknown_clock")
	ErrUnknownType   error = errcode.Code("unknown_device_type")
)
