package ov5647

import "sensorcode-go/x/mathx"

// ControlID names an imaging control.
type ControlID uint8

const (
	CtrlAutoWhiteBalance ControlID = iota + 1
	CtrlAutoGain
	CtrlAutoExposure
	CtrlExposure
	CtrlGain
	// Read-only.
	CtrlPixelRate
	CtrlLinkFreq
)

var controlNames = [...]string{
	CtrlAutoWhiteBalance: "auto_white_balance",
	CtrlAutoGain:         "auto_gain",
	CtrlAutoExposure:     "auto_exposure",
	CtrlExposure:         "exposure",
	CtrlGain:             "gain",
	CtrlPixelRate:        "pixel_rate",
	CtrlLinkFreq:         "link_freq",
}

func (id ControlID) String() string {
	if int(id) < len(controlNames) && controlNames[id] != "" {
		return controlNames[id]
	}
	return "unknown"
}

// ParseControlID maps a control name back to its ID (0 if unknown).
func ParseControlID(s string) ControlID {
	for i, n := range controlNames {
		if n != "" && n == s {
			return ControlID(i)
		}
	}
	return 0
}

// Control is one control write. Booleans are carried as 0/1.
type Control struct {
	ID    ControlID
	Value int32
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func AutoWhiteBalance(on bool) Control { return Control{ID: CtrlAutoWhiteBalance, Value: b2i(on)} }
func AutoGain(on bool) Control         { return Control{ID: CtrlAutoGain, Value: b2i(on)} }
func AutoExposure(on bool) Control     { return Control{ID: CtrlAutoExposure, Value: b2i(on)} }
func Exposure(v uint16) Control        { return Control{ID: CtrlExposure, Value: int32(v)} }
func Gain(v uint16) Control            { return Control{ID: CtrlGain, Value: int32(v)} }

// ControlDesc declares a control's range.
type ControlDesc struct {
	ID       ControlID
	Name     string
	Min      int64
	Max      int64
	Step     int64
	Default  int64
	Boolean  bool
	ReadOnly bool
}

// Declared ranges.
const (
	ExposureMin     = 1
	ExposureMax     = 65535
	ExposureDefault = 1000
	GainMin         = 16
	GainMax         = 1023
	GainDefault     = 64
)

// ControlDescs lists every control with its declared range.
func ControlDescs() []ControlDesc {
	return []ControlDesc{
		{ID: CtrlAutoWhiteBalance, Name: CtrlAutoWhiteBalance.String(), Max: 1, Step: 1, Default: 1, Boolean: true},
		{ID: CtrlAutoGain, Name: CtrlAutoGain.String(), Max: 1, Step: 1, Default: 1, Boolean: true},
		{ID: CtrlAutoExposure, Name: CtrlAutoExposure.String(), Max: 1, Step: 1, Default: 1, Boolean: true},
		{ID: CtrlExposure, Name: CtrlExposure.String(), Min: ExposureMin, Max: ExposureMax, Step: 1, Default: ExposureDefault},
		{ID: CtrlGain, Name: CtrlGain.String(), Min: GainMin, Max: GainMax, Step: 1, Default: GainDefault},
		{ID: CtrlPixelRate, Name: CtrlPixelRate.String(), Min: NominalPixelRate, Max: NominalPixelRate, Step: 1, Default: NominalPixelRate, ReadOnly: true},
		{ID: CtrlLinkFreq, Name: CtrlLinkFreq.String(), Min: LinkFreqHz, Max: LinkFreqHz, Step: 1, Default: LinkFreqHz, ReadOnly: true},
	}
}

// Validate checks the value against the declared range.
func (c Control) Validate() error {
	switch c.ID {
	case CtrlAutoWhiteBalance, CtrlAutoGain, CtrlAutoExposure:
		if !mathx.InRange(c.Value, 0, 1) {
			return ErrControlRange
		}
	case CtrlExposure:
		if !mathx.InRange(c.Value, ExposureMin, ExposureMax) {
			return ErrControlRange
		}
	case CtrlGain:
		if !mathx.InRange(c.Value, GainMin, GainMax) {
			return ErrControlRange
		}
	case CtrlPixelRate, CtrlLinkFreq:
		return ErrReadOnly
	default:
		return ErrUnknownControl
	}
	return nil
}

// ApplyControl writes one control. Invalid values are rejected first. On an
// unpowered sensor it succeeds without bus traffic; the caller keeps the
// value for re-application after power-on. A failure part way through a
// multi-register write is returned as is.
func (d *Device) ApplyControl(c Control) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !d.powered.Load() {
		return nil
	}
	v := uint32(c.Value)
	switch c.ID {
	case CtrlAutoWhiteBalance:
		return d.regs.Write(regISPCtrl01, byte(v))
	case CtrlAutoGain:
		return d.setManualBit(agcManual, v == 0)
	case CtrlAutoExposure:
		return d.setManualBit(aecManual, v == 0)
	case CtrlExposure:
		return d.regs.Apply([]RegisterOp{
			{regExposureHi, byte(v>>12) & 0x0f},
			{regExposureMid, byte(v >> 4)},
			{regExposureLo, byte(v<<4) & 0xf0},
		})
	case CtrlGain:
		return d.regs.Apply([]RegisterOp{
			{regGainHi, byte(v>>8) & 0x03},
			{regGainLo, byte(v)},
		})
	}
	return ErrUnknownControl
}

// 0x3503 uses inverted polarity: a set bit means manual.
func (d *Device) setManualBit(bit byte, manual bool) error {
	if manual {
		return d.regs.Update(regAECAGC, 0, bit)
	}
	return d.regs.Update(regAECAGC, bit, 0)
}

// ReadExposure decodes the 16-bit exposure from its three registers.
func (d *Device) ReadExposure() (uint16, error) {
	hi, err := d.regs.Read(regExposureHi)
	if err != nil {
		return 0, err
	}
	mid, err := d.regs.Read(regExposureMid)
	if err != nil {
		return 0, err
	}
	lo, err := d.regs.Read(regExposureLo)
	if err != nil {
		return 0, err
	}
	return uint16(hi&0x0f)<<12 | uint16(mid)<<4 | uint16(lo>>4), nil
}

// ReadGain decodes the 10-bit gain.
func (d *Device) ReadGain() (uint16, error) {
	hi, err := d.regs.Read(regGainHi)
	if err != nil {
		return 0, err
	}
	lo, err := d.regs.Read(regGainLo)
	if err != nil {
		return 0, err
	}
	return uint16(hi&0x03)<<8 | uint16(lo), nil
}

// ReadAuto returns the current automatic flag of an auto control.
func (d *Device) ReadAuto(id ControlID) (bool, error) {
	switch id {
	case CtrlAutoWhiteBalance:
		v, err := d.regs.Read(regISPCtrl01)
		return v&0x01 != 0, err
	case CtrlAutoGain, CtrlAutoExposure:
		bit := byte(aecManual)
		if id == CtrlAutoGain {
			bit = agcManual
		}
		v, err := d.regs.Read(regAECAGC)
		return v&bit == 0, err
	}
	return false, ErrUnknownControl
}
