package ov5647

import "sensorcode-go/x/mathx"

// FormatPenalty is added to the selection cost of a format mismatch. It is
// larger than any width+height distance representable in two uint32s, so a
// format match always wins over a size match.
const FormatPenalty uint64 = 1 << 33

func selectionCost(m *Mode, w, h uint32, f PixelFormat) uint64 {
	c := uint64(mathx.AbsDiff(m.Width, w)) + uint64(mathx.AbsDiff(m.Height, h))
	if m.Format != f {
		c += FormatPenalty
	}
	return c
}

// SelectFrom returns the index of the cheapest entry of table for the
// request, or -1 if table is empty. Ties go to the lowest index.
func SelectFrom(table []Mode, w, h uint32, f PixelFormat) int {
	best := -1
	var bestCost uint64
	for i := range table {
		c := selectionCost(&table[i], w, h, f)
		if best < 0 || c < bestCost {
			best, bestCost = i, c
		}
	}
	return best
}

// Select picks the best catalog entry. It never fails.
func Select(w, h uint32, f PixelFormat) int {
	return SelectFrom(modes[:], w, h, f)
}

// TryFormat returns the mode SetFormat would pick without changing state.
func (d *Device) TryFormat(w, h uint32, f PixelFormat) Mode {
	m, _ := ModeAt(Select(w, h, f))
	return m
}

// SetFormat selects the best mode and makes it current. It does not touch
// the hardware; the mode is applied at the next power-on or ApplySelected.
// The returned bool is false when the selection did not change.
func (d *Device) SetFormat(w, h uint32, f PixelFormat) (Mode, bool) {
	i := Select(w, h, f)
	d.mu.Lock()
	changed := d.mode != i
	d.mode = i
	d.mu.Unlock()
	m, _ := ModeAt(i)
	return m, changed
}

// Format returns the current mode.
func (d *Device) Format() Mode {
	m, _ := ModeAt(d.ModeIndex())
	return m
}

// ModeIndex returns the current catalog index.
func (d *Device) ModeIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// PixelRate returns the pixel rate of the current mode.
func (d *Device) PixelRate() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return modes[d.mode].PixelRate
}

// ApplySelected re-runs the current mode on a powered sensor and leaves it idle.
func (d *Device) ApplySelected() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.power.RefCount == 0 {
		return ErrNotPowered
	}
	return d.applyModeLocked()
}

func (d *Device) applyModeLocked() error {
	m := &modes[d.mode]
	if err := d.regs.Apply(m.Sequence); err != nil {
		return err
	}
	if err := d.regs.Update(regMIPICtrl14, vcMask, d.vc<<vcShift); err != nil {
		return err
	}
	v, err := d.regs.Read(regSWStandby)
	if err != nil {
		return err
	}
	if v&standbyStreaming == 0 {
		if err := d.regs.Write(regSWStandby, v|standbyStreaming); err != nil {
			return err
		}
		d.emit(Event{Kind: EventStandbyForced, Mode: d.mode, Reg: regSWStandby})
	}
	if err := d.regs.Apply(streamOffSeq); err != nil {
		return err
	}
	d.streaming.Store(false)
	d.emit(Event{Kind: EventModeApplied, Mode: d.mode})
	return nil
}

// Selection returns the rectangle for a selection target.
func (d *Device) Selection(target SelectionTarget) (Rect, error) {
	switch target {
	case TargetCrop, TargetCropDefault, TargetCropBounds:
		m := d.Format()
		return Rect{Width: m.Width, Height: m.Height}, nil
	case TargetNativeSize:
		return Rect{Width: NativeWidth, Height: NativeHeight}, nil
	}
	return Rect{}, ErrInvalidTarget
}

// BusConfig describes the CSI-2 link this device drives.
func (d *Device) BusConfig() BusConfig {
	return BusConfig{
		Lanes:           DataLanes,
		VirtualChannel:  d.vc,
		ContinuousClock: true,
		LinkFreqHz:      LinkFreqHz,
	}
}
