package ov5647adpt

import (
	"context"
	"sync"
	"time"

	"sensorcode-go/drivers/ov5647"
	"sensorcode-go/errcode"
	"sensorcode-go/services/hal/internal/consts"
	"sensorcode-go/services/hal/internal/halcore"
	"sensorcode-go/services/hal/internal/util"
	"sensorcode-go/types"
)

type adaptor struct {
	id   string
	dev  *ov5647.Device
	info types.CameraInfo

	// mu serialises control verbs so a power transition and the control
	// replay that follows it are not interleaved with set_control.
	mu    sync.Mutex
	ctrls map[ov5647.ControlID]int32
}

func newAdaptor(id string, dev *ov5647.Device, info types.CameraInfo) *adaptor {
	return &adaptor{id: id, dev: dev, info: info, ctrls: map[ov5647.ControlID]int32{}}
}

func (a *adaptor) ID() string { return a.id }

func (a *adaptor) Capabilities() []halcore.CapInfo {
	return []halcore.CapInfo{{Kind: consts.KindCamera, Info: a.info}}
}

// Trigger has nothing to start; status is read synchronously.
func (a *adaptor) Trigger(ctx context.Context) (time.Duration, error) { return 0, nil }

func (a *adaptor) Collect(ctx context.Context) (halcore.Sample, error) {
	now := time.Now().UnixMilli()
	st := a.dev.State()
	m := a.dev.Format()
	s := types.CameraStatus{
		RefCount:  st.RefCount,
		Streaming: a.dev.Streaming(),
		Mode:      a.dev.ModeIndex(),
		Width:     m.Width,
		Height:    m.Height,
		Format:    m.Format.String(),
		TsMs:      now,
	}
	if a.dev.Powered() {
		exp, err := a.dev.ReadExposure()
		if err != nil {
			return nil, errcode.Wrap("read_exposure", err)
		}
		gain, err := a.dev.ReadGain()
		if err != nil {
			return nil, errcode.Wrap("read_gain", err)
		}
		s.Exposure, s.Gain = exp, gain
	}
	return halcore.Sample{{Kind: consts.KindCamera, Payload: s, TsMs: now}}, nil
}

func (a *adaptor) Close() error {
	a.dev.Detach()
	return nil
}

func (a *adaptor) Control(kind, method string, payload any) (any, error) {
	if kind != consts.KindCamera {
		return nil, halcore.ErrUnsupported
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	switch method {
	case consts.CtrlPower:
		p, err := decode[types.CameraPower](payload)
		if err != nil {
			return nil, err
		}
		return a.power(p.On)

	case consts.CtrlStream:
		p, err := decode[types.CameraStream](payload)
		if err != nil {
			return nil, err
		}
		if err := a.dev.SetStreaming(p.On); err != nil {
			return nil, errcode.Wrap(method, err)
		}
		return types.OKReply{OK: true}, nil

	case consts.CtrlSetFormat:
		p, err := decode[types.CameraFormat](payload)
		if err != nil {
			return nil, err
		}
		return a.setFormat(p)

	case consts.CtrlGetFormat:
		return formatReply(a.dev.Format(), a.dev.ModeIndex()), nil

	case consts.CtrlEnumFormats:
		return enumFormats(), nil

	case consts.CtrlGetSelection:
		p, err := decode[types.CameraSelectionReq](payload)
		if err != nil {
			return nil, err
		}
		t, ok := parseTarget(p.Target)
		if !ok {
			return nil, errcode.Wrap(method, ov5647.ErrInvalidTarget)
		}
		r, err := a.dev.Selection(t)
		if err != nil {
			return nil, errcode.Wrap(method, err)
		}
		return types.CameraRect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}, nil

	case consts.CtrlBusConfig:
		bc := a.dev.BusConfig()
		return types.CameraBusConfig{
			Lanes:           bc.Lanes,
			VirtualChannel:  bc.VirtualChannel,
			ContinuousClock: bc.ContinuousClock,
			LinkFreqHz:      bc.LinkFreqHz,
		}, nil

	case consts.CtrlSetControl:
		p, err := decode[types.CameraControl](payload)
		if err != nil {
			return nil, err
		}
		c := ov5647.Control{ID: ov5647.ParseControlID(p.Name), Value: p.Value}
		if err := a.dev.ApplyControl(c); err != nil {
			return nil, errcode.Wrap(method, err)
		}
		a.ctrls[c.ID] = c.Value
		return p, nil

	case consts.CtrlGetControl:
		p, err := decode[types.CameraControl](payload)
		if err != nil {
			return nil, err
		}
		v, err := a.controlValue(ov5647.ParseControlID(p.Name))
		if err != nil {
			return nil, errcode.Wrap(method, err)
		}
		return types.CameraControl{Name: p.Name, Value: v}, nil

	case consts.CtrlListControls:
		descs := ov5647.ControlDescs()
		out := make([]types.CameraControlDesc, 0, len(descs))
		for _, d := range descs {
			out = append(out, types.CameraControlDesc{
				Name:     d.Name,
				Min:      d.Min,
				Max:      d.Max,
				Step:     d.Step,
				Default:  d.Default,
				Boolean:  d.Boolean,
				ReadOnly: d.ReadOnly,
			})
		}
		return out, nil

	case consts.CtrlReadRegister:
		p, err := decode[types.CameraRegister](payload)
		if err != nil {
			return nil, err
		}
		if !a.dev.Powered() {
			return nil, errcode.Wrap(method, ov5647.ErrNotPowered)
		}
		v, err := a.dev.ReadRegister(p.Addr)
		if err != nil {
			return nil, errcode.Wrap(method, err)
		}
		return types.CameraRegister{Addr: p.Addr, Value: v}, nil

	case consts.CtrlWriteRegister:
		p, err := decode[types.CameraRegister](payload)
		if err != nil {
			return nil, err
		}
		if !a.dev.Powered() {
			return nil, errcode.Wrap(method, ov5647.ErrNotPowered)
		}
		if err := a.dev.WriteRegister(p.Addr, p.Value); err != nil {
			return nil, errcode.Wrap(method, err)
		}
		return p, nil
	}
	return nil, halcore.ErrUnsupported
}

func (a *adaptor) power(on bool) (types.CameraPowerAck, error) {
	if !on {
		a.dev.Release()
		return types.CameraPowerAck{OK: true, RefCount: a.dev.State().RefCount}, nil
	}
	if err := a.dev.Acquire(); err != nil {
		return types.CameraPowerAck{}, errcode.Wrap(consts.CtrlPower, err)
	}
	n := a.dev.State().RefCount
	if n == 1 {
		// A failed power-on must not hold a reference the caller never
		// releases.
		if err := a.replayControls(); err != nil {
			a.dev.Release()
			return types.CameraPowerAck{}, errcode.Wrap(consts.CtrlPower, err)
		}
	}
	return types.CameraPowerAck{OK: true, RefCount: n}, nil
}

// replayControls writes cached control values in declaration order.
func (a *adaptor) replayControls() error {
	for _, d := range ov5647.ControlDescs() {
		v, ok := a.ctrls[d.ID]
		if !ok {
			continue
		}
		if err := a.dev.ApplyControl(ov5647.Control{ID: d.ID, Value: v}); err != nil {
			return err
		}
	}
	return nil
}

func (a *adaptor) setFormat(p types.CameraFormat) (types.CameraFormat, error) {
	f := ov5647.ParsePixelFormat(p.Format)
	if p.Try {
		i := ov5647.Select(p.Width, p.Height, f)
		out := formatReply(a.dev.TryFormat(p.Width, p.Height, f), i)
		out.Try = true
		return out, nil
	}
	if a.dev.Streaming() {
		return types.CameraFormat{}, errcode.Busy
	}
	m, changed := a.dev.SetFormat(p.Width, p.Height, f)
	if changed && a.dev.Powered() {
		if err := a.dev.ApplySelected(); err != nil {
			return types.CameraFormat{}, errcode.Wrap(consts.CtrlSetFormat, err)
		}
		if err := a.replayControls(); err != nil {
			return types.CameraFormat{}, errcode.Wrap(consts.CtrlSetFormat, err)
		}
	}
	return formatReply(m, a.dev.ModeIndex()), nil
}

// controlValue reads the hardware when powered and falls back to the cache
// (then the declared default) otherwise.
func (a *adaptor) controlValue(id ov5647.ControlID) (int32, error) {
	var desc *ov5647.ControlDesc
	descs := ov5647.ControlDescs()
	for i := range descs {
		if descs[i].ID == id {
			desc = &descs[i]
			break
		}
	}
	if desc == nil {
		return 0, ov5647.ErrUnknownControl
	}
	if desc.ReadOnly {
		return int32(desc.Default), nil
	}
	if a.dev.Powered() {
		switch id {
		case ov5647.CtrlExposure:
			v, err := a.dev.ReadExposure()
			return int32(v), err
		case ov5647.CtrlGain:
			v, err := a.dev.ReadGain()
			return int32(v), err
		default:
			on, err := a.dev.ReadAuto(id)
			if on {
				return 1, err
			}
			return 0, err
		}
	}
	if v, ok := a.ctrls[id]; ok {
		return v, nil
	}
	return int32(desc.Default), nil
}

func formatReply(m ov5647.Mode, idx int) types.CameraFormat {
	return types.CameraFormat{
		Width:     m.Width,
		Height:    m.Height,
		Format:    m.Format.String(),
		Code:      m.Format.MediaBusCode(),
		PixelRate: m.PixelRate,
		Mode:      idx,
	}
}

func enumFormats() types.CameraFormats {
	var out types.CameraFormats
	for _, f := range ov5647.PixelFormats() {
		for _, s := range ov5647.FrameSizes(f) {
			out.Sizes = append(out.Sizes, types.CameraFrameSize{
				Format: f.String(),
				Code:   f.MediaBusCode(),
				Width:  s.Width,
				Height: s.Height,
			})
		}
	}
	fi := ov5647.FrameInterval()
	out.Interval = [2]uint32{fi.Numerator, fi.Denominator}
	return out
}

func parseTarget(s string) (ov5647.SelectionTarget, bool) {
	switch s {
	case "", "crop":
		return ov5647.TargetCrop, true
	case "crop_default":
		return ov5647.TargetCropDefault, true
	case "crop_bounds":
		return ov5647.TargetCropBounds, true
	case "native_size":
		return ov5647.TargetNativeSize, true
	}
	return 0, false
}

func decode[T any](payload any) (T, error) {
	v, err := util.DecodePayload[T](payload)
	if err != nil {
		return v, &errcode.E{C: errcode.InvalidPayload, Msg: err.Error(), Err: err}
	}
	return v, nil
}
