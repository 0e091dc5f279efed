// Package ov5647adpt binds the OV5647 driver to the HAL as a "camera"
// capability.
package ov5647adpt

import (
	"errors"
	"time"

	"sensorcode-go/drivers/ov5647"
	"sensorcode-go/errcode"
	"sensorcode-go/services/hal/internal/consts"
	"sensorcode-go/services/hal/internal/halcore"
	"sensorcode-go/services/hal/internal/halerr"
	"sensorcode-go/services/hal/internal/registry"
	"sensorcode-go/services/hal/internal/util"
	"sensorcode-go/types"

	"gopkg.in/retry.v1"
)

const (
	defaultClock    = "xclk0"
	defaultSampleMs = 1000
	minSample       = 50 * time.Millisecond
	maxSample       = time.Hour
	defaultAttempts = 3
)

// attachBackoff spaces attach attempts; SCCB may NACK while the sensor is
// still coming out of reset.
var attachBackoff = retry.Exponential{
	Initial:  10 * time.Millisecond,
	Factor:   2,
	MaxDelay: 200 * time.Millisecond,
}

// Params is the JSON "params" block of an ov5647 device.
type Params struct {
	Addr           uint16 `json:"addr,omitempty"`  // default 0x36
	Clock          string `json:"clock,omitempty"` // clock factory id
	ResetPin       *int   `json:"reset_pin,omitempty"`
	ResetActiveLow *bool  `json:"reset_active_low,omitempty"` // default true
	VirtualChannel uint8  `json:"virtual_channel,omitempty"`
	SettleMs       int    `json:"settle_ms,omitempty"`
	Width          uint32 `json:"width,omitempty"`
	Height         uint32 `json:"height,omitempty"`
	Format         string `json:"format,omitempty"`
	SampleMs       int    `json:"sample_ms,omitempty"`
	AttachAttempts int    `json:"attach_attempts,omitempty"` // default 3
}

func init() { registry.RegisterBuilder("ov5647", builder{}) }

type builder struct{}

func (builder) Build(in registry.BuildInput) (registry.BuildOutput, error) {
	var p Params
	if err := util.DecodeJSON(in.ParamsJSON, &p); err != nil {
		return registry.BuildOutput{}, &errcode.E{C: errcode.InvalidParams, Op: "params", Msg: err.Error(), Err: err}
	}
	if in.BusRefType != "i2c" || in.BusRefID == "" {
		return registry.BuildOutput{}, halerr.ErrMissingBusRef
	}
	i2c, ok := in.Buses.ByID(in.BusRefID)
	if !ok {
		return registry.BuildOutput{}, halerr.ErrUnknownBus
	}
	if in.Clocks == nil {
		return registry.BuildOutput{}, halerr.ErrUnknownClock
	}
	if p.Clock == "" {
		p.Clock = defaultClock
	}
	clk, ok := in.Clocks.ByID(p.Clock)
	if !ok {
		return registry.BuildOutput{}, halerr.ErrUnknownClock
	}

	activeLow := true
	if p.ResetActiveLow != nil {
		activeLow = *p.ResetActiveLow
	}
	var reset ov5647.ResetLine
	if p.ResetPin != nil {
		if in.Pins == nil {
			return registry.BuildOutput{}, halerr.ErrUnknownPin
		}
		pin, ok := in.Pins.ByNumber(*p.ResetPin)
		if !ok {
			return registry.BuildOutput{}, halerr.ErrUnknownPin
		}
		// Start in reset.
		if err := pin.ConfigureOutput(!activeLow); err != nil {
			return registry.BuildOutput{}, err
		}
		reset = ov5647.ResetFromPin(pin, activeLow)
	}

	if p.Addr == 0 {
		p.Addr = ov5647.AddressDefault
	}
	cfg := ov5647.DefaultConfig()
	if p.SettleMs > 0 {
		cfg.Settle = time.Duration(p.SettleMs) * time.Millisecond
	}
	cfg.VirtualChannel = p.VirtualChannel
	if p.Width != 0 || p.Height != 0 || p.Format != "" {
		f := ov5647.ParsePixelFormat(p.Format)
		if f == ov5647.FormatUnknown {
			f = ov5647.FormatBayer8
		}
		cfg.InitialMode = ov5647.Select(p.Width, p.Height, f)
	}
	emit := in.Emit
	id := in.DeviceID
	cfg.OnEvent = func(ev ov5647.Event) {
		if emit == nil {
			return
		}
		emit(halcore.DeviceEvent{DevID: id, Kind: consts.KindCamera, Payload: eventPayload(ev)})
	}

	dev := ov5647.New(ov5647.NewI2CTransport(i2c, p.Addr), clk, reset, cfg)
	if p.AttachAttempts <= 0 {
		p.AttachAttempts = defaultAttempts
	}
	if err := attach(dev, p.AttachAttempts); err != nil {
		return registry.BuildOutput{}, errcode.Wrap("attach", err)
	}

	if p.SampleMs <= 0 {
		p.SampleMs = defaultSampleMs
	}
	every := util.ClampDuration(time.Duration(p.SampleMs)*time.Millisecond, minSample, maxSample)

	return registry.BuildOutput{
		Adaptor: newAdaptor(in.DeviceID, dev, types.CameraInfo{
			Driver:        "ov5647",
			Bus:           in.BusRefID,
			Addr:          p.Addr,
			ChipID:        0x5647,
			Modes:         ov5647.NumModes(),
			NativeWidth:   ov5647.NativeWidth,
			NativeHeight:  ov5647.NativeHeight,
			Lanes:         ov5647.DataLanes,
			ClockHz:       clk.Rate(),
			SchemaVersion: 1,
		}),
		BusID:       in.BusRefID,
		SampleEvery: every,
	}, nil
}

// attach retries transport failures only. A wrong chip id or clock is final.
func attach(dev *ov5647.Device, attempts int) error {
	var err error
	for a := retry.Start(retry.LimitCount(attempts, attachBackoff), nil); a.Next(); {
		err = dev.Attach()
		if err == nil || !errors.Is(err, ov5647.ErrTransport) {
			return err
		}
	}
	return err
}

func eventPayload(ev ov5647.Event) types.CameraEvent {
	out := types.CameraEvent{
		Kind:    ev.Kind.String(),
		Warning: ev.Kind.Warning(),
		Mode:    ev.Mode,
		Reg:     ev.Reg,
		Count:   ev.Count,
		TsMs:    time.Now().UnixMilli(),
	}
	if ev.Err != nil {
		out.Error = ev.Err.Error()
	}
	return out
}
