package ov5647adpt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sensorcode-go/errcode"
	"sensorcode-go/services/hal/internal/consts"
	"sensorcode-go/services/hal/internal/halcore"
	"sensorcode-go/services/hal/internal/halerr"
	"sensorcode-go/services/hal/internal/platform"
	"sensorcode-go/services/hal/internal/registry"
	"sensorcode-go/types"
)

type eventLog struct {
	mu  sync.Mutex
	evs []types.CameraEvent
}

func (l *eventLog) emit(ev halcore.DeviceEvent) {
	l.mu.Lock()
	l.evs = append(l.evs, ev.Payload.(types.CameraEvent))
	l.mu.Unlock()
}

func (l *eventLog) kinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.evs))
	for i, e := range l.evs {
		out[i] = e.Kind
	}
	return out
}

func build(t *testing.T, b *platform.Board, params any) (*adaptor, registry.BuildOutput, *eventLog) {
	t.Helper()
	log := &eventLog{}
	out, err := builder{}.Build(registry.BuildInput{
		Ctx:        context.Background(),
		Buses:      b.Buses,
		Pins:       b.Pins,
		Clocks:     b.Clocks,
		DeviceID:   "cam0",
		Type:       "ov5647",
		ParamsJSON: params,
		BusRefType: "i2c",
		BusRefID:   "i2c0",
		Emit:       log.emit,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return out.Adaptor.(*adaptor), out, log
}

func ctl(t *testing.T, a *adaptor, verb string, payload any) any {
	t.Helper()
	res, err := a.Control(consts.KindCamera, verb, payload)
	if err != nil {
		t.Fatalf("%s: %v", verb, err)
	}
	return res
}

func TestBuilderRegistered(t *testing.T) {
	if _, ok := registry.Lookup("ov5647"); !ok {
		t.Fatal("ov5647 builder not registered")
	}
}

func TestBuildDetectsAndParks(t *testing.T) {
	b := platform.NewHostBoard()
	a, out, log := build(t, b, map[string]any{"reset_pin": 5, "sample_ms": 10})
	if out.BusID != "i2c0" {
		t.Fatalf("bus id %q", out.BusID)
	}
	if out.SampleEvery != minSample {
		t.Fatalf("sample period not clamped: %v", out.SampleEvery)
	}
	if b.Sensor.Resets() != 1 {
		t.Fatal("detect did not soft-reset")
	}
	if b.XCLK.Enabled() {
		t.Fatal("clock left running after attach")
	}
	pin, _ := b.Pins.Get(5)
	if !pin.IsOutput() || pin.Get() {
		t.Fatal("reset pin should be driven low (asserted)")
	}
	caps := a.Capabilities()
	info := caps[0].Info.(types.CameraInfo)
	if caps[0].Kind != consts.KindCamera || info.Addr != 0x36 || info.ClockHz != 25_000_000 || info.Modes != 6 {
		t.Fatalf("info %+v", info)
	}
	if k := log.kinds(); len(k) != 1 || k[0] != "detected" {
		t.Fatalf("events %v", k)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name   string
		params any
		ref    string
		want   error
	}{
		{"bus", nil, "i2c9", halerr.ErrUnknownBus},
		{"clock", map[string]any{"clock": "nope"}, "i2c0", halerr.ErrUnknownClock},
		{"pin", map[string]any{"reset_pin": 99}, "i2c0", halerr.ErrUnknownPin},
	}
	for _, c := range cases {
		b := platform.NewHostBoard()
		_, err := builder{}.Build(registry.BuildInput{
			Buses: b.Buses, Pins: b.Pins, Clocks: b.Clocks,
			DeviceID: "cam0", ParamsJSON: c.params, BusRefType: "i2c", BusRefID: c.ref,
		})
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: got %v want %v", c.name, err, c.want)
		}
	}

	b := platform.NewHostBoard()
	_, err := builder{}.Build(registry.BuildInput{Buses: b.Buses, Clocks: b.Clocks, DeviceID: "cam0"})
	if !errors.Is(err, halerr.ErrMissingBusRef) {
		t.Fatalf("missing bus ref: %v", err)
	}
}

func TestBuildAttachFailures(t *testing.T) {
	b := platform.NewHostBoard()
	b.Sensor.SetChipID(0x56, 0x48)
	_, err := builder{}.Build(registry.BuildInput{
		Buses: b.Buses, Clocks: b.Clocks, DeviceID: "cam0", BusRefType: "i2c", BusRefID: "i2c0",
	})
	if errcode.Of(err) != errcode.NotFound {
		t.Fatalf("id mismatch: %v (%s)", err, errcode.Of(err))
	}

	b = platform.NewHostBoard()
	_, err = builder{}.Build(registry.BuildInput{
		Buses: b.Buses, Clocks: b.Clocks, DeviceID: "cam0", BusRefType: "i2c", BusRefID: "i2c0",
		ParamsJSON: map[string]any{"clock": "xclk1"},
	})
	if errcode.Of(err) != errcode.ConfigError {
		t.Fatalf("24 MHz clock: %v", err)
	}
}

func TestPowerReplaysControls(t *testing.T) {
	b := platform.NewHostBoard()
	a, _, _ := build(t, b, nil)

	// Unpowered set_control is cached, no traffic.
	before := b.Sensor.Transactions()
	ctl(t, a, consts.CtrlSetControl, types.CameraControl{Name: "exposure", Value: 0x1234})
	ctl(t, a, consts.CtrlSetControl, types.CameraControl{Name: "auto_exposure", Value: 0})
	if b.Sensor.Transactions() != before {
		t.Fatal("unpowered control touched the bus")
	}

	ack := ctl(t, a, consts.CtrlPower, types.CameraPower{On: true}).(types.CameraPowerAck)
	if !ack.OK || ack.RefCount != 1 {
		t.Fatalf("ack %+v", ack)
	}
	if hi, mid, lo := b.Sensor.Reg(0x3500), b.Sensor.Reg(0x3501), b.Sensor.Reg(0x3502); hi != 0x01 || mid != 0x23 || lo != 0x40 {
		t.Fatalf("exposure not replayed: %02x %02x %02x", hi, mid, lo)
	}
	if b.Sensor.Reg(0x3503)&0x01 == 0 {
		t.Fatal("manual exposure not replayed")
	}

	ack = ctl(t, a, consts.CtrlPower, map[string]any{"on": true}).(types.CameraPowerAck)
	if ack.RefCount != 2 {
		t.Fatalf("ref count %d", ack.RefCount)
	}
	ctl(t, a, consts.CtrlPower, types.CameraPower{On: false})
	if !b.XCLK.Enabled() {
		t.Fatal("clock stopped with a reference held")
	}
	ack = ctl(t, a, consts.CtrlPower, types.CameraPower{On: false}).(types.CameraPowerAck)
	if ack.RefCount != 0 || b.XCLK.Enabled() {
		t.Fatalf("last release did not power down: %+v", ack)
	}
}

func TestPowerReplayFailureDropsReference(t *testing.T) {
	b := platform.NewHostBoard()
	a, _, _ := build(t, b, nil)
	ctl(t, a, consts.CtrlSetControl, types.CameraControl{Name: "gain", Value: 100})

	b.Sensor.FailWrite(0x350B, 100, true)
	_, err := a.Control(consts.KindCamera, consts.CtrlPower, types.CameraPower{On: true})
	if errcode.Of(err) != errcode.TransportError {
		t.Fatalf("power on: %v", err)
	}
	if n := a.dev.State().RefCount; n != 0 || b.XCLK.Enabled() {
		t.Fatalf("failed power on left refcount=%d clock=%v", n, b.XCLK.Enabled())
	}

	b.Sensor.FailWrite(0x350B, 100, false)
	ack := ctl(t, a, consts.CtrlPower, types.CameraPower{On: true}).(types.CameraPowerAck)
	if ack.RefCount != 1 || b.Sensor.Reg(0x350B) != 100 {
		t.Fatalf("retry %+v gain lo %#x", ack, b.Sensor.Reg(0x350B))
	}
	ack = ctl(t, a, consts.CtrlPower, types.CameraPower{On: false}).(types.CameraPowerAck)
	if ack.RefCount != 0 || b.XCLK.Enabled() {
		t.Fatalf("single release did not power down: %+v", ack)
	}
}

func TestStreamAndFormat(t *testing.T) {
	b := platform.NewHostBoard()
	a, _, log := build(t, b, map[string]any{"width": 1920, "height": 1080, "format": "bggr10"})

	f := ctl(t, a, consts.CtrlGetFormat, nil).(types.CameraFormat)
	if f.Width != 1920 || f.Format != "SBGGR10_1X10" || f.Mode != 4 {
		t.Fatalf("initial format %+v", f)
	}

	if _, err := a.Control(consts.KindCamera, consts.CtrlStream, types.CameraStream{On: true}); errcode.Of(err) != errcode.NotPowered {
		t.Fatalf("unpowered stream: %v", err)
	}

	ctl(t, a, consts.CtrlPower, types.CameraPower{On: true})
	ctl(t, a, consts.CtrlStream, types.CameraStream{On: true})
	if b.Sensor.Reg(0x4800) != 0x14 || b.Sensor.Reg(0x300D) != 0x00 {
		t.Fatal("stream-on registers")
	}
	if _, err := a.Control(consts.KindCamera, consts.CtrlSetFormat, types.CameraFormat{Width: 640, Height: 480}); errcode.Of(err) != errcode.Busy {
		t.Fatalf("set_format while streaming: %v", err)
	}

	try := ctl(t, a, consts.CtrlSetFormat, types.CameraFormat{Width: 640, Height: 480, Format: "bggr8", Try: true}).(types.CameraFormat)
	if !try.Try || try.Mode != 0 {
		t.Fatalf("try %+v", try)
	}

	ctl(t, a, consts.CtrlStream, types.CameraStream{On: false})
	got := ctl(t, a, consts.CtrlSetFormat, types.CameraFormat{Width: 1296, Height: 972, Format: "SBGGR8_1X8"}).(types.CameraFormat)
	if got.Mode != 2 || got.Width != 1296 {
		t.Fatalf("set_format %+v", got)
	}
	n := 0
	for _, k := range log.kinds() {
		if k == "mode_applied" {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("expected power-on and set_format mode applies, got %d", n)
	}

	st, err := a.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	s := st[0].Payload.(types.CameraStatus)
	if s.RefCount != 1 || s.Streaming || s.Mode != 2 || s.Format != "SBGGR8_1X8" {
		t.Fatalf("status %+v", s)
	}
}

func TestEnumAndDescriptors(t *testing.T) {
	a, _, _ := build(t, platform.NewHostBoard(), nil)

	fs := ctl(t, a, consts.CtrlEnumFormats, nil).(types.CameraFormats)
	if len(fs.Sizes) != 5 || fs.Interval != [2]uint32{1, 30} {
		t.Fatalf("formats %+v", fs)
	}
	r := ctl(t, a, consts.CtrlGetSelection, types.CameraSelectionReq{Target: "native_size"}).(types.CameraRect)
	if r.Width != 2624 || r.Height != 1956 {
		t.Fatalf("native %+v", r)
	}
	if _, err := a.Control(consts.KindCamera, consts.CtrlGetSelection, types.CameraSelectionReq{Target: "compose"}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("bad target: %v", err)
	}
	bc := ctl(t, a, consts.CtrlBusConfig, nil).(types.CameraBusConfig)
	if bc.Lanes != 2 || !bc.ContinuousClock {
		t.Fatalf("bus config %+v", bc)
	}
	descs := ctl(t, a, consts.CtrlListControls, nil).([]types.CameraControlDesc)
	if len(descs) != 7 {
		t.Fatalf("descs %d", len(descs))
	}
	v := ctl(t, a, consts.CtrlGetControl, types.CameraControl{Name: "gain"}).(types.CameraControl)
	if v.Value != 64 {
		t.Fatalf("default gain %d", v.Value)
	}
}

func TestControlErrors(t *testing.T) {
	a, _, _ := build(t, platform.NewHostBoard(), nil)
	cases := []struct {
		verb    string
		payload any
		want    errcode.Code
	}{
		{consts.CtrlSetControl, types.CameraControl{Name: "gain", Value: 2000}, errcode.OutOfRange},
		{consts.CtrlSetControl, types.CameraControl{Name: "pixel_rate", Value: 1}, errcode.ReadOnly},
		{consts.CtrlSetControl, types.CameraControl{Name: "zoom", Value: 1}, errcode.UnknownControl},
		{consts.CtrlSetControl, "{not json", errcode.InvalidPayload},
		{consts.CtrlReadRegister, types.CameraRegister{Addr: 0x300A}, errcode.NotPowered},
	}
	for _, c := range cases {
		_, err := a.Control(consts.KindCamera, c.verb, c.payload)
		if errcode.Of(err) != c.want {
			t.Fatalf("%s %v: got %v want %s", c.verb, c.payload, err, c.want)
		}
	}
	if _, err := a.Control("sensor", consts.CtrlPower, nil); !errors.Is(err, halcore.ErrUnsupported) {
		t.Fatalf("wrong kind: %v", err)
	}
	if _, err := a.Control(consts.KindCamera, "zoom", nil); !errors.Is(err, halcore.ErrUnsupported) {
		t.Fatalf("unknown verb: %v", err)
	}
}

func TestRegisterAccessAndTransportFailure(t *testing.T) {
	b := platform.NewHostBoard()
	a, _, _ := build(t, b, nil)
	ctl(t, a, consts.CtrlPower, types.CameraPower{On: true})

	r := ctl(t, a, consts.CtrlReadRegister, types.CameraRegister{Addr: 0x300B}).(types.CameraRegister)
	if r.Value != 0x47 {
		t.Fatalf("read %+v", r)
	}
	ctl(t, a, consts.CtrlWriteRegister, types.CameraRegister{Addr: 0x5001, Value: 0})
	if b.Sensor.Reg(0x5001) != 0 {
		t.Fatal("write_register")
	}

	b.Sensor.FailReg(0x350A, true)
	if _, err := a.Control(consts.KindCamera, consts.CtrlSetControl, types.CameraControl{Name: "gain", Value: 100}); errcode.Of(err) != errcode.TransportError {
		t.Fatalf("gain write: %v", err)
	}
	if _, err := a.Collect(context.Background()); errcode.Of(err) != errcode.TransportError {
		t.Fatalf("collect: %v", err)
	}
}

func TestCloseParks(t *testing.T) {
	b := platform.NewHostBoard()
	a, _, log := build(t, b, nil)
	ctl(t, a, consts.CtrlPower, types.CameraPower{On: true})
	ctl(t, a, consts.CtrlPower, types.CameraPower{On: true})
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if b.XCLK.Enabled() || b.Sensor.Reg(0x0100)&0x01 != 0 {
		t.Fatal("close left the sensor running")
	}
	k := log.kinds()
	if k[len(k)-1] != "power_off" {
		t.Fatalf("events %v", k)
	}
}

func TestAttachRetriesTransportErrors(t *testing.T) {
	b := platform.NewHostBoard()
	b.Sensor.FailReg(0x300A, true)
	_, err := builder{}.Build(registry.BuildInput{
		Buses: b.Buses, Clocks: b.Clocks, DeviceID: "cam0", BusRefType: "i2c", BusRefID: "i2c0",
		ParamsJSON: `{"attach_attempts": 2}`,
	})
	if errcode.Of(err) != errcode.TransportError {
		t.Fatalf("got %v", err)
	}
	if n := b.Sensor.Resets(); n != 2 {
		t.Fatalf("attach attempts %d", n)
	}
	if en, dis := b.XCLK.Counts(); en != 2 || dis != 2 {
		t.Fatalf("clock enables %d disables %d", en, dis)
	}

	// Id mismatch is not retried.
	b = platform.NewHostBoard()
	b.Sensor.SetChipID(0x00, 0x00)
	_, err = builder{}.Build(registry.BuildInput{
		Buses: b.Buses, Clocks: b.Clocks, DeviceID: "cam0", BusRefType: "i2c", BusRefID: "i2c0",
	})
	if errcode.Of(err) != errcode.NotFound || b.Sensor.Resets() != 1 {
		t.Fatalf("got %v after %d attempts", err, b.Sensor.Resets())
	}
}
